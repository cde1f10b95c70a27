package feedcheck

import (
	"context"
	"errors"
	"testing"
	"time"

	"pet-feeding-engine/internal/adapters/storage/memory"
	"pet-feeding-engine/internal/domain/feedings"
	"pet-feeding-engine/internal/domain/notifications"
	"pet-feeding-engine/internal/domain/pets"
	"pet-feeding-engine/internal/domain/schedules"
)

const testTZ = "America/Sao_Paulo"

type fixture struct {
	pets      pets.Repository
	schedules schedules.Repository
	feedings  feedings.Repository
	sink      *memory.NotificationSink
	svc       *Service
	loc       *time.Location
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	loc, err := time.LoadLocation(testTZ)
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	f := &fixture{
		pets:      memory.NewPetRepo(),
		schedules: memory.NewScheduleRepo(),
		feedings:  memory.NewFeedingRepo(),
		sink:      memory.NewNotificationSink(),
		loc:       loc,
	}
	f.svc = NewService(Deps{
		Pets:      f.pets,
		Schedules: f.schedules,
		Feedings:  f.feedings,
		Sink:      f.sink,
	})
	f.svc.now = func() time.Time { return now }

	return f
}

func (f *fixture) addPet(t *testing.T, id string, createdAt time.Time, fallback *float64) {
	t.Helper()
	err := f.pets.Create(context.Background(), pets.Pet{
		ID:                   id,
		HouseholdID:          "house-1",
		Name:                 "Michi-" + id,
		Species:              pets.SpeciesCat,
		FeedingIntervalHours: fallback,
		CreatedAt:            createdAt,
		UpdatedAt:            createdAt,
	})
	if err != nil {
		t.Fatalf("seed pet %s: %v", id, err)
	}
}

func (f *fixture) addFixed(t *testing.T, id, petID string, times ...string) {
	t.Helper()
	err := f.schedules.Create(context.Background(), schedules.Schedule{
		ID: id, PetID: petID, Kind: schedules.KindFixedTime, Times: times, Enabled: true,
	})
	if err != nil {
		t.Fatalf("seed schedule %s: %v", id, err)
	}
}

func (f *fixture) addInterval(t *testing.T, id, petID string, hours float64) {
	t.Helper()
	err := f.schedules.Create(context.Background(), schedules.Schedule{
		ID: id, PetID: petID, Kind: schedules.KindInterval, IntervalHours: hours, Enabled: true,
	})
	if err != nil {
		t.Fatalf("seed schedule %s: %v", id, err)
	}
}

func (f *fixture) addFeeding(t *testing.T, id, petID string, fedAt time.Time) {
	t.Helper()
	err := f.feedings.Create(context.Background(), feedings.FeedingEvent{
		ID: id, PetID: petID, UserID: "user-1", FedAt: fedAt, RecordedAt: fedAt,
	})
	if err != nil {
		t.Fatalf("seed feeding %s: %v", id, err)
	}
}

func TestUpcoming_SortedAndUnresolvableSkipped(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", base, nil)
	f.addPet(t, "pet-b", base.Add(time.Minute), nil)
	f.addPet(t, "pet-c", base.Add(2*time.Minute), nil) // sin horarios ni respaldo

	f.addFixed(t, "s-a", "pet-a", "20:00")
	f.addInterval(t, "s-b", "pet-b", 8)
	f.addFeeding(t, "f-b", "pet-b", time.Date(2024, 1, 1, 6, 0, 0, 0, loc))

	got, err := f.svc.Upcoming(context.Background(), "house-1", testTZ, 5)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}

	// pet-c no resuelve y se omite en silencio; quedan 2 ordenadas asc.
	if len(got) != 2 {
		t.Fatalf("expected 2 results, got %d", len(got))
	}
	if got[0].PetID != "pet-b" || got[1].PetID != "pet-a" {
		t.Fatalf("expected [pet-b, pet-a], got [%s, %s]", got[0].PetID, got[1].PetID)
	}

	wantB := time.Date(2024, 1, 1, 14, 0, 0, 0, loc)
	if !got[0].At.Equal(wantB) {
		t.Fatalf("pet-b: expected %v, got %v", wantB, got[0].At)
	}
	wantA := time.Date(2024, 1, 1, 20, 0, 0, 0, loc)
	if !got[1].At.Equal(wantA) {
		t.Fatalf("pet-a: expected %v, got %v", wantA, got[1].At)
	}

	for _, nf := range got {
		if nf.Overdue {
			t.Fatalf("freshly computed feedings cannot be overdue: %#v", nf)
		}
	}
}

func TestUpcoming_LimitCapsResults(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", base, nil)
	f.addPet(t, "pet-b", base.Add(time.Minute), nil)
	f.addPet(t, "pet-c", base.Add(2*time.Minute), nil)

	f.addFixed(t, "s-a", "pet-a", "20:00")
	f.addFixed(t, "s-b", "pet-b", "10:00")
	f.addFixed(t, "s-c", "pet-c", "15:00")

	got, err := f.svc.Upcoming(context.Background(), "house-1", testTZ, 2)
	if err != nil {
		t.Fatalf("Upcoming returned error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected limit to cap at 2, got %d", len(got))
	}
	if got[0].PetID != "pet-b" || got[1].PetID != "pet-c" {
		t.Fatalf("expected the 2 earliest [pet-b, pet-c], got [%s, %s]", got[0].PetID, got[1].PetID)
	}
}

// failingScheduleRepo rompe ListByPet para una mascota puntual.
type failingScheduleRepo struct {
	schedules.Repository
	failFor string
}

func (r failingScheduleRepo) ListByPet(ctx context.Context, petID string) ([]schedules.Schedule, error) {
	if petID == r.failFor {
		return nil, errors.New("boom")
	}
	return r.Repository.ListByPet(ctx, petID)
}

func TestUpcoming_PerPetFailureIsIsolated(t *testing.T) {
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", base, nil)
	f.addPet(t, "pet-b", base.Add(time.Minute), nil)
	f.addFixed(t, "s-a", "pet-a", "20:00")
	f.addFixed(t, "s-b", "pet-b", "21:00")

	f.svc.schedules = failingScheduleRepo{Repository: f.schedules, failFor: "pet-b"}

	got, err := f.svc.Upcoming(context.Background(), "house-1", testTZ, 5)
	if err != nil {
		t.Fatalf("one broken pet must not fail the aggregation: %v", err)
	}
	if len(got) != 1 || got[0].PetID != "pet-a" {
		t.Fatalf("expected only pet-a, got %#v", got)
	}
}

func TestCheckAndNotify_PublishesToSink(t *testing.T) {
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 19, 45, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", now.Add(-24*time.Hour), nil)
	f.addFixed(t, "s-a", "pet-a", "20:00") // en 15 min: cae en la ventana de recordatorio
	f.addFeeding(t, "f-a", "pet-a", now.Add(-2*time.Minute))

	published, err := f.svc.CheckAndNotify(context.Background(), "house-1", "user-1", testTZ)
	if err != nil {
		t.Fatalf("CheckAndNotify returned error: %v", err)
	}

	// Recordatorio (20:00 en 15 min) + duplicado (registro de hace 2 min).
	if published != 2 {
		t.Fatalf("expected 2 published notifications, got %d", published)
	}

	got := f.sink.Published()
	if len(got) != 2 {
		t.Fatalf("sink should hold 2 notifications, got %d", len(got))
	}
	if got[0].Kind != notifications.KindReminder || got[1].Kind != notifications.KindDuplicate {
		t.Fatalf("expected [reminder, duplicate], got [%s, %s]", got[0].Kind, got[1].Kind)
	}
}

// countingFeedingRepo cuenta las lecturas del último registro por mascota.
type countingFeedingRepo struct {
	feedings.Repository
	lastCalls map[string]int
}

func (r *countingFeedingRepo) LastByPet(ctx context.Context, petID string) (*feedings.FeedingEvent, error) {
	r.lastCalls[petID]++
	return r.Repository.LastByPet(ctx, petID)
}

func TestCheckAndNotify_FetchesLastFeedingOnce(t *testing.T) {
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 19, 45, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", now.Add(-24*time.Hour), nil)
	f.addFixed(t, "s-a", "pet-a", "20:00")
	f.addFeeding(t, "f-a", "pet-a", now.Add(-2*time.Minute))

	counting := &countingFeedingRepo{Repository: f.feedings, lastCalls: map[string]int{}}
	f.svc.feedings = counting

	if _, err := f.svc.CheckAndNotify(context.Background(), "house-1", "user-1", testTZ); err != nil {
		t.Fatalf("CheckAndNotify returned error: %v", err)
	}
	// La evaluación y el chequeo de duplicados comparten la misma lectura.
	if got := counting.lastCalls["pet-a"]; got != 1 {
		t.Fatalf("expected a single LastByPet fetch per pet, got %d", got)
	}
}

func TestCheckAndNotify_QuietWhenNothingDue(t *testing.T) {
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", now.Add(-24*time.Hour), nil)
	f.addFixed(t, "s-a", "pet-a", "20:00") // falta mucho: nada que avisar

	published, err := f.svc.CheckAndNotify(context.Background(), "house-1", "user-1", testTZ)
	if err != nil {
		t.Fatalf("CheckAndNotify returned error: %v", err)
	}
	if published != 0 || len(f.sink.Published()) != 0 {
		t.Fatalf("expected silence, got %d published", published)
	}
}

func TestNotifyScheduleChanged(t *testing.T) {
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	f.addPet(t, "pet-a", now.Add(-24*time.Hour), nil)
	f.addFixed(t, "s-a", "pet-a", "20:00")

	nf, err := f.svc.NotifyScheduleChanged(context.Background(), "pet-a", "user-1", testTZ)
	if err != nil {
		t.Fatalf("NotifyScheduleChanged returned error: %v", err)
	}
	if nf == nil || !nf.At.Equal(time.Date(2024, 1, 1, 20, 0, 0, 0, loc)) {
		t.Fatalf("expected re-evaluated 20:00, got %#v", nf)
	}

	got := f.sink.Published()
	if len(got) != 1 || got[0].Kind != notifications.KindScheduleChanged {
		t.Fatalf("expected one schedule_changed in the sink, got %#v", got)
	}
}

func TestNextForPet(t *testing.T) {
	loc, _ := time.LoadLocation(testTZ)
	now := time.Date(2024, 1, 1, 9, 0, 0, 0, loc)

	f := newFixture(t, now)
	fallback := 12.0
	f.addPet(t, "pet-a", now.Add(-24*time.Hour), &fallback)

	nf, err := f.svc.NextForPet(context.Background(), "pet-a", testTZ)
	if err != nil {
		t.Fatalf("NextForPet returned error: %v", err)
	}
	if nf == nil || !nf.At.Equal(now.Add(12*time.Hour)) {
		t.Fatalf("expected now+12h from the pet fallback, got %#v", nf)
	}
	if nf.SourceScheduleID != "" {
		t.Fatalf("fallback result carries no source schedule, got %q", nf.SourceScheduleID)
	}

	if _, err := f.svc.NextForPet(context.Background(), "ghost", testTZ); err == nil {
		t.Fatalf("expected error for unknown pet")
	}
}
