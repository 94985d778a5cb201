package services

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"flip-menu/db"
)

func TestResultMarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		v    any
		want string
	}{
		{"data", Ok([]string{"a"}), `{"success":true,"data":["a"]}`},
		{"id", Ok(ID("abc")), `{"success":true,"id":"abc"}`},
		{"empty", Ok(Empty{}), `{"success":true}`},
		{"fail", Fail[ID](errors.New("menu not found")), `{"success":false,"error":"menu not found"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := json.Marshal(tt.v)
			if err != nil {
				t.Fatal(err)
			}
			if string(b) != tt.want {
				t.Errorf("got %s, want %s", b, tt.want)
			}
		})
	}
}

func TestFailWithNilError(t *testing.T) {
	r := Fail[int](nil)
	if r.OK() || r.Err() == nil {
		t.Error("Fail(nil) must still be a failure")
	}
}

func TestRunRecoversPanics(t *testing.T) {
	setup(t)
	db.Docs = nil // every store call panics
	r := GetRestaurant(context.Background(), "x")
	if r.OK() {
		t.Fatal("want failure")
	}
	if r.Err() == nil {
		t.Fatal("want error")
	}
}
