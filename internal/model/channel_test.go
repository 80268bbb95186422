package model

import "testing"

func TestDirectChannelIDCommutative(t *testing.T) {
	ab := DirectChannelID("user-a", "user-b")
	ba := DirectChannelID("user-b", "user-a")
	if ab != ba {
		t.Fatalf("channel id depends on argument order: %q vs %q", ab, ba)
	}
	if ab != "user-a_user-b" {
		t.Fatalf("unexpected canonical form: %q", ab)
	}
}

func TestDirectChannelIDTrimsWhitespace(t *testing.T) {
	got := DirectChannelID(" u2 ", "u1")
	if got != "u1_u2" {
		t.Fatalf("unexpected channel id: %q", got)
	}
}

func TestIsDirectChannel(t *testing.T) {
	if IsDirectChannel(GeneralChannelID) {
		t.Fatal("general channel classified as direct")
	}
	if IsDirectChannel("FINANCE") {
		t.Fatal("division channel classified as direct")
	}
	if !IsDirectChannel(DirectChannelID("u1", "u2")) {
		t.Fatal("direct channel not recognized")
	}
}
