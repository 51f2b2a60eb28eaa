package store_test

import (
	"context"
	"testing"

	"github.com/acervolab/catalogagent/record"
	"github.com/acervolab/catalogagent/store"
)

func TestMemoryStoreSaveAndGet(t *testing.T) {
	st := store.NewMemoryStore()
	rec := &record.Record{TemplateID: "tpl-book", Unimarc: "001 12345"}

	id, err := st.SaveRecord(context.Background(), rec)
	if err != nil {
		t.Fatalf("SaveRecord: %v", err)
	}
	if id == "" {
		t.Fatal("expected non-empty record id")
	}

	got, ok := st.GetRecord(id)
	if !ok {
		t.Fatal("record not found after save")
	}
	if got.TemplateID != "tpl-book" || got.Unimarc != "001 12345" {
		t.Errorf("unexpected record: %+v", got)
	}

	if _, ok := st.GetRecord("missing"); ok {
		t.Error("lookup of unknown id succeeded")
	}
}

func TestMemoryStoreDistinctIDs(t *testing.T) {
	st := store.NewMemoryStore()
	a, _ := st.SaveRecord(context.Background(), &record.Record{})
	b, _ := st.SaveRecord(context.Background(), &record.Record{})
	if a == b {
		t.Errorf("expected distinct ids, got %s twice", a)
	}
}
