package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"captn.backend/internal/domain/entities"
	domainerrors "captn.backend/internal/domain/errors"
	"captn.backend/internal/domain/repositories"
	"captn.backend/internal/infrastructure/directory"
)

const isoDate = "2006-01-02"

// WeekSlot is one displayed week: its Monday and, when somebody signed up,
// the captain enriched with directory profile fields.
type WeekSlot struct {
	Date    time.Time
	Captain *entities.Captainship
}

// SchedulePage is the result of one schedule render: the ordered week slots
// plus the resolved profile of the signed-in user, when there is one.
type SchedulePage struct {
	Slots []WeekSlot
	User  *directory.Profile
}

type ScheduleUsecase struct {
	repo repositories.CaptainshipRepository
	dir  *directory.Client
	now  func() time.Time
}

func NewScheduleUsecase(repo repositories.CaptainshipRepository, dir *directory.Client) *ScheduleUsecase {
	return &ScheduleUsecase{repo: repo, dir: dir, now: time.Now}
}

// DateForWeek returns the Monday of ISO week `week` of `year` at midnight
// UTC. Week 1 is the week containing January 4th.
func DateForWeek(week, year int) time.Time {
	jan4 := time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC)
	weekday := int(jan4.Weekday())
	if weekday == 0 {
		weekday = 7 // Sunday
	}
	week1Monday := jan4.AddDate(0, 0, -(weekday - 1))
	return week1Monday.AddDate(0, 0, (week-1)*7)
}

// CurrentWeek returns the ISO week number of t.
func CurrentWeek(t time.Time) int {
	_, week := t.ISOWeek()
	return week
}

// BuildSchedulePage produces the slots from startWeek through endWeek of
// year (0 means the current year), stepping 7 days at a time, with captains
// joined on and profiles resolved. One directory resolver is shared across
// the whole render, so the signed-in user appearing as a captain costs a
// single lookup. startWeek > endWeek yields an empty page.
func (u *ScheduleUsecase) BuildSchedulePage(ctx context.Context, startWeek, endWeek, year int, authEmail string) (*SchedulePage, error) {
	resolver := u.dir.NewResolver()

	slots, err := u.buildSlots(ctx, resolver, startWeek, endWeek, year)
	if err != nil {
		return nil, err
	}

	page := &SchedulePage{Slots: slots}
	if authEmail != "" {
		p := resolver.Resolve(ctx, authEmail)
		page.User = &p
	}
	return page, nil
}

func (u *ScheduleUsecase) buildSlots(ctx context.Context, resolver *directory.Resolver, startWeek, endWeek, year int) ([]WeekSlot, error) {
	if year == 0 {
		year = u.now().Year()
	}

	first := DateForWeek(startWeek, year)
	last := DateForWeek(endWeek, year)

	rows, err := u.repo.ListRange(ctx, first, last)
	if err != nil {
		return nil, err
	}

	byDate := make(map[string]*entities.Captainship, len(rows))
	for _, c := range rows {
		byDate[c.StartedAt.Format(isoDate)] = c
	}

	slots := []WeekSlot{}
	for d := first; !d.After(last); d = d.AddDate(0, 0, 7) {
		slot := WeekSlot{Date: d}
		if c, ok := byDate[d.Format(isoDate)]; ok {
			p := resolver.Resolve(ctx, c.Email)
			c.Name = p.RealName
			c.Avatar = p.ProfileImage
			c.URL = p.HTML
			slot.Captain = c
		}
		slots = append(slots, slot)
	}
	return slots, nil
}

// CurrentCaptain returns this week's captain if any, along with the Monday
// of the current week.
func (u *ScheduleUsecase) CurrentCaptain(ctx context.Context) (*entities.Captainship, time.Time, error) {
	today := u.now()
	start := DateForWeek(CurrentWeek(today), today.Year())

	c, err := u.repo.GetByStartedAt(ctx, start)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, start, nil
		}
		return nil, start, err
	}
	return c, start, nil
}

// Claim creates a captainship for email on the given week. year 0 means the
// current year. Returns ErrInvalidInput for an out-of-range week and
// ErrWeekTaken when the week already has a captain.
func (u *ScheduleUsecase) Claim(ctx context.Context, week, year int, email string) error {
	if !entities.ValidWeekNumber(week) {
		return domainerrors.ErrInvalidInput
	}
	if year == 0 {
		year = u.now().Year()
	}
	startedAt := DateForWeek(week, year)

	_, err := u.repo.GetByStartedAt(ctx, startedAt)
	if err == nil {
		return domainerrors.ErrWeekTaken
	}
	if !errors.Is(err, domainerrors.ErrNotFound) {
		return err
	}

	c := &entities.Captainship{
		ID:        uuid.New(),
		Email:     email,
		StartedAt: startedAt,
		CreatedAt: u.now(),
	}
	if err := u.repo.Create(ctx, c); err != nil {
		// The unique index closes the check-then-create race.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return domainerrors.ErrWeekTaken
		}
		return err
	}
	return nil
}

// Release deletes email's captainship on the given week, reporting whether
// anything was actually deleted. A week owned by somebody else is left
// untouched.
func (u *ScheduleUsecase) Release(ctx context.Context, week, year int, email string) (bool, error) {
	if !entities.ValidWeekNumber(week) {
		return false, domainerrors.ErrInvalidInput
	}
	if year == 0 {
		year = u.now().Year()
	}
	startedAt := DateForWeek(week, year)

	n, err := u.repo.DeleteOwned(ctx, startedAt, email)
	if err != nil {
		return false, err
	}
	return n > 0, nil
}
