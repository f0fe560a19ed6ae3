package query_test

import (
	"strings"
	"testing"

	"github.com/talentgate/talentgate/pkg/query"
)

func testProjection() *query.ProjectionMap {
	return query.NewProjectionMap("hiring", "opportunities", "o").
		Project("id", "id").
		Project("title", "title").
		Project("created_at", "createdAt")
}

func TestBuildSelectsFromQualifiedTable(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).Build()

	if !strings.Contains(sql, "FROM hiring.opportunities o") {
		t.Errorf("expected schema-qualified aliased table, got %q", sql)
	}
	if !strings.HasPrefix(sql, "SELECT o.id, o.title, o.created_at") {
		t.Errorf("unexpected column list: %q", sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestBuildCount(t *testing.T) {
	title := "engineer"
	sql, args := query.NewBuilder(testProjection()).
		WhereContains("title", &title).
		BuildCount()

	if sql != "SELECT COUNT(*) FROM hiring.opportunities o WHERE o.title ILIKE $1" {
		t.Errorf("got %q", sql)
	}
	if len(args) != 1 || args[0] != "%engineer%" {
		t.Errorf("got args %v", args)
	}
}

func TestBuildPage(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection(), query.SortField{Field: "createdAt", Descending: true}).
		BuildPage(2, 25)

	if !strings.Contains(sql, "FROM hiring.opportunities o") {
		t.Errorf("expected qualified table, got %q", sql)
	}
	if !strings.Contains(sql, "ORDER BY o.created_at DESC") {
		t.Errorf("expected default sort applied, got %q", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT 25 OFFSET 25") {
		t.Errorf("expected page window, got %q", sql)
	}
}

func TestBuildSingle(t *testing.T) {
	sql, args := query.NewBuilder(testProjection()).BuildSingle("id", "abc")

	if sql != "SELECT o.id, o.title, o.created_at FROM hiring.opportunities o WHERE o.id = $1" {
		t.Errorf("got %q", sql)
	}
	if len(args) != 1 || args[0] != "abc" {
		t.Errorf("got args %v", args)
	}
}

func TestBuildSingleOrNull(t *testing.T) {
	sql, _ := query.NewBuilder(testProjection()).
		WhereEquals("title", "engineer").
		BuildSingleOrNull()

	if !strings.Contains(sql, "FROM hiring.opportunities o WHERE o.title = $1") {
		t.Errorf("got %q", sql)
	}
	if !strings.HasSuffix(sql, "LIMIT 1") {
		t.Errorf("expected single-row limit, got %q", sql)
	}
}

func TestParseSortFields(t *testing.T) {
	fields := query.ParseSortFields("title,-createdAt")
	if len(fields) != 2 {
		t.Fatalf("expected 2 fields, got %d", len(fields))
	}
	if fields[0].Field != "title" || fields[0].Descending {
		t.Errorf("got %+v", fields[0])
	}
	if fields[1].Field != "createdAt" || !fields[1].Descending {
		t.Errorf("got %+v", fields[1])
	}
}
