package player

import (
	"testing"

	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/catalog"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/inventory"
	"github.com/ArtTechSooKim/Puang-Adventure-sub000/internal/game/snapshot"
)

func newTestAvatar() *Avatar {
	c := catalog.New([]catalog.Definition{
		{ID: "bat_bone", Name: "Bat Bone", MaxStack: 5},
	}, nil)
	return New(inventory.New(c, inventory.Capacity))
}

func TestNew_StartsAtFullVitals(t *testing.T) {
	a := newTestAvatar()
	f := a.CapturePlayerFragment()
	if f.Health != snapshot.DefaultHealth || f.Stamina != snapshot.DefaultStamina {
		t.Fatalf("vitals = %d/%g, want %d/%g",
			f.Health, f.Stamina, snapshot.DefaultHealth, snapshot.DefaultStamina)
	}
	if f.DashUnlocked || f.UltimateUnlocked {
		t.Fatal("abilities must start locked")
	}
}

func TestCaptureApply_RoundTrip(t *testing.T) {
	a := newTestAvatar()
	a.MoveTo(snapshot.Vec3{X: 1, Y: 2, Z: 0})
	a.SetVitals(80, 40)
	a.UnlockDash()
	a.Inventory().Add("bat_bone", 2)

	captured := a.CapturePlayerFragment()

	b := newTestAvatar()
	b.ApplyPlayerFragment(captured)
	b.ApplyInventoryFragment(a.CaptureInventoryFragment())

	got := b.CapturePlayerFragment()
	if got != captured {
		t.Fatalf("restored fragment = %+v, want %+v", got, captured)
	}
	if b.Inventory().Count("bat_bone") != 2 {
		t.Fatalf("restored count = %d, want 2", b.Inventory().Count("bat_bone"))
	}
}
