package auth

import "testing"

func TestGateIsAdmin(t *testing.T) {
	g := New(10)
	if !g.IsAdmin(10) {
		t.Fatalf("configured admin not recognised")
	}
	if g.IsAdmin(20) {
		t.Fatalf("unexpected admin")
	}
	if g.AdminID() != 10 {
		t.Fatalf("want admin id 10, got %d", g.AdminID())
	}
}

func TestGateWithoutAdmin(t *testing.T) {
	if New(0).IsAdmin(0) {
		t.Fatalf("zero id must never be admin")
	}
	var g *Gate
	if g.IsAdmin(10) {
		t.Fatalf("nil gate must deny")
	}
}
