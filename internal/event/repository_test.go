package event

import (
	"context"
	"testing"
)

func seedEvents(t *testing.T, repo *SQLiteRepository) {
	t.Helper()
	ctx := context.Background()
	events := []*AccessEvent{
		{Date: "2026-08-28", Time: "09:00:00", ActorName: "Ada"},
		{Date: "2026-08-29", Time: "18:30:00", ActorName: "Ada"},
		{Date: "2026-08-29", Time: "08:15:00", ActorName: UnknownActor},
		{Date: "2026-08-30", Time: "07:45:00", ActorName: "Grace"},
		{Date: "2026-08-30", Time: "22:10:00", ActorName: UnknownActor},
	}
	for _, ev := range events {
		if err := repo.Insert(ctx, ev); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}
}

func TestList_NewestFirst(t *testing.T) {
	repo := NewRepository(testDB(t))
	seedEvents(t, repo)

	got, err := repo.List(context.Background(), "", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("List() returned %d events, want 5", len(got))
	}

	if got[0].Date != "2026-08-30" || got[0].Time != "22:10:00" {
		t.Errorf("first = %s %s, want 2026-08-30 22:10:00", got[0].Date, got[0].Time)
	}
	if got[4].Date != "2026-08-28" {
		t.Errorf("last = %s, want 2026-08-28", got[4].Date)
	}
}

func TestList_DateRange(t *testing.T) {
	repo := NewRepository(testDB(t))
	seedEvents(t, repo)
	ctx := context.Background()

	got, err := repo.List(ctx, "2026-08-29", "2026-08-29")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 2 {
		t.Errorf("List(29th only) returned %d events, want 2", len(got))
	}

	got, err = repo.List(ctx, "2026-08-29", "")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(got) != 4 {
		t.Errorf("List(from 29th) returned %d events, want 4", len(got))
	}
}

func TestFrequencyByActor(t *testing.T) {
	repo := NewRepository(testDB(t))
	seedEvents(t, repo)

	got, err := repo.FrequencyByActor(context.Background(), "", "")
	if err != nil {
		t.Fatalf("FrequencyByActor() error = %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("FrequencyByActor() returned %d actors, want 3", len(got))
	}

	// Ada and Unknown tie at 2; ties break alphabetically
	if got[0].ActorName != "Ada" || got[0].Count != 2 {
		t.Errorf("first = %s(%d), want Ada(2)", got[0].ActorName, got[0].Count)
	}
	if got[1].ActorName != UnknownActor || got[1].Count != 2 {
		t.Errorf("second = %s(%d), want Unknown(2)", got[1].ActorName, got[1].Count)
	}
	if got[2].ActorName != "Grace" || got[2].Count != 1 {
		t.Errorf("third = %s(%d), want Grace(1)", got[2].ActorName, got[2].Count)
	}
}

func TestFrequencyByActor_SentinelGroups(t *testing.T) {
	repo := NewRepository(testDB(t))
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		ev := &AccessEvent{Date: "2026-08-30", Time: "01:02:03", ActorName: UnknownActor, Note: string(rune('a' + i))}
		if err := repo.Insert(ctx, ev); err != nil {
			t.Fatalf("Insert() error = %v", err)
		}
	}

	got, err := repo.FrequencyByActor(ctx, "", "")
	if err != nil {
		t.Fatalf("FrequencyByActor() error = %v", err)
	}
	if len(got) != 1 || got[0].Count != 4 {
		t.Errorf("got %v, want single Unknown(4) row", got)
	}
}
