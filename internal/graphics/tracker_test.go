package graphics

import "testing"

func TestTrackerReportsLeaks(t *testing.T) {
	tracker := NewTracker()
	res := NewResources(NewNullDevice(), tracker, "")

	a := res.NewTextureFromImage("a", solidImage(1, 1))
	b := res.NewMesh("b", triangle())
	c := res.NewTextureFromImage("c", solidImage(2, 2))
	b.Destroy()

	live := tracker.Live()
	if len(live) != 2 || live[0].ID != a.ID || live[1].ID != c.ID {
		t.Fatalf("live = %+v", live)
	}
	if counts := tracker.Count(); counts[KindTexture] != 2 || counts[KindMesh] != 0 {
		t.Errorf("counts = %v", counts)
	}
	if kinds := tracker.Kinds(); len(kinds) != 1 || kinds[0] != KindTexture {
		t.Errorf("kinds = %v", kinds)
	}

	var nilTracker *Tracker
	if nilTracker.Live() != nil {
		t.Error("nil tracker must report nothing")
	}
}
