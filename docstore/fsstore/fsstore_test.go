package fsstore

import (
	"errors"
	"fmt"
	"testing"

	"flip-menu/docstore"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestToUpdates(t *testing.T) {
	ups := toUpdates(docstore.Doc{"status": "deleted", "order": int64(4), "settings.theme": "x"})
	if len(ups) != 3 {
		t.Fatalf("len = %d, want 3", len(ups))
	}
	want := []string{"order", "settings.theme", "status"}
	for i, u := range ups {
		if len(u.FieldPath) != 1 || u.FieldPath[0] != want[i] {
			t.Errorf("update %d path = %v, want [%s]", i, u.FieldPath, want[i])
		}
		if u.Path != "" {
			t.Errorf("update %d uses dotted Path %q; keys must stay literal", i, u.Path)
		}
	}
}

func TestMapErr(t *testing.T) {
	nf := mapErr("menus", "m1", status.Error(codes.NotFound, "no document to update"))
	if !errors.Is(nf, docstore.ErrNotFound) {
		t.Errorf("NotFound not mapped: %v", nf)
	}
	dup := mapErr("login_throttle", "web:1", status.Error(codes.AlreadyExists, "document already exists"))
	if !errors.Is(dup, docstore.ErrExists) {
		t.Errorf("AlreadyExists not mapped: %v", dup)
	}
	other := mapErr("menus", "m1", fmt.Errorf("deadline"))
	if errors.Is(other, docstore.ErrNotFound) {
		t.Errorf("unrelated error mapped to ErrNotFound: %v", other)
	}
}
