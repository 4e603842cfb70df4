package services

import (
	"encoding/json"
	"reflect"
	"testing"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

func decodeList(t *testing.T, raw datatypes.JSON) []string {
	t.Helper()
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		t.Fatalf("decode list: %v", err)
	}
	return out
}

func TestToggleReaction(t *testing.T) {
	alice := uuid.New()
	bob := uuid.New()
	empty := datatypes.JSON([]byte("[]"))

	// First like adds to likes.
	likes, dislikes, err := toggleReaction(empty, empty, alice, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := decodeList(t, likes); !reflect.DeepEqual(got, []string{alice.String()}) {
		t.Fatalf("likes = %v", got)
	}
	if got := decodeList(t, dislikes); len(got) != 0 {
		t.Fatalf("dislikes = %v, want empty", got)
	}

	// Repeating the like removes it.
	likes, dislikes, err = toggleReaction(likes, dislikes, alice, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := decodeList(t, likes); len(got) != 0 {
		t.Fatalf("likes after repeat = %v, want empty", got)
	}

	// Disliking moves the user out of likes.
	likes, dislikes, err = toggleReaction(empty, empty, alice, true)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	likes, dislikes, err = toggleReaction(likes, dislikes, alice, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := decodeList(t, likes); len(got) != 0 {
		t.Fatalf("likes after dislike = %v, want empty", got)
	}
	if got := decodeList(t, dislikes); !reflect.DeepEqual(got, []string{alice.String()}) {
		t.Fatalf("dislikes = %v", got)
	}

	// Other users' reactions are untouched.
	likes, dislikes, err = toggleReaction(likes, dislikes, bob, false)
	if err != nil {
		t.Fatalf("toggle: %v", err)
	}
	if got := decodeList(t, dislikes); !reflect.DeepEqual(got, []string{alice.String(), bob.String()}) {
		t.Fatalf("dislikes = %v", got)
	}
}
