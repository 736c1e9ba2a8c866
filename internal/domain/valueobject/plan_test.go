package valueobject

import "testing"

func TestPlan_HasChanges(t *testing.T) {
	plan := NewPlan()
	if plan.HasChanges() {
		t.Error("empty plan must not report changes")
	}

	plan.AddChange(NewChange(ChangeTypeNoop, "dns_record", "a", nil, nil))
	if plan.HasChanges() {
		t.Error("noop-only plan must not report changes")
	}

	plan.AddChange(NewChange(ChangeTypeCreate, "dns_record", "b", nil, nil))
	if !plan.HasChanges() {
		t.Error("plan with a create must report changes")
	}
}

func TestPlan_Sort(t *testing.T) {
	plan := NewPlan()
	plan.AddChange(NewChange(ChangeTypeCreate, "dns_record", "zz", nil, nil))
	plan.AddChange(NewChange(ChangeTypeUpdate, "dns_record", "mm", nil, nil))
	plan.AddChange(NewChange(ChangeTypeDelete, "dns_record", "bb", nil, nil))
	plan.AddChange(NewChange(ChangeTypeCreate, "dns_record", "aa", nil, nil))
	plan.AddChange(NewChange(ChangeTypeDelete, "dns_record", "yy", nil, nil))

	plan.Sort()

	want := []struct {
		changeType ChangeType
		name       string
	}{
		{ChangeTypeDelete, "bb"},
		{ChangeTypeDelete, "yy"},
		{ChangeTypeUpdate, "mm"},
		{ChangeTypeCreate, "aa"},
		{ChangeTypeCreate, "zz"},
	}

	changes := plan.Changes()
	if len(changes) != len(want) {
		t.Fatalf("expected %d changes, got %d", len(want), len(changes))
	}
	for i, w := range want {
		if changes[i].Type() != w.changeType || changes[i].Name() != w.name {
			t.Errorf("changes[%d] = %s %s, want %s %s",
				i, changes[i].Type(), changes[i].Name(), w.changeType, w.name)
		}
	}
}

func TestPlan_FilterByType(t *testing.T) {
	plan := NewPlan()
	plan.AddChange(NewChange(ChangeTypeCreate, "dns_record", "a", nil, nil))
	plan.AddChange(NewChange(ChangeTypeDelete, "dns_record", "b", nil, nil))
	plan.AddChange(NewChange(ChangeTypeCreate, "dns_record", "c", nil, nil))

	creates := plan.FilterByType(ChangeTypeCreate)
	if len(creates) != 2 {
		t.Errorf("expected 2 creates, got %d", len(creates))
	}
	if len(plan.FilterByType(ChangeTypeUpdate)) != 0 {
		t.Error("expected no updates")
	}
}

func TestChangeType_Symbol(t *testing.T) {
	tests := []struct {
		changeType ChangeType
		want       string
	}{
		{ChangeTypeCreate, "+"},
		{ChangeTypeUpdate, "~"},
		{ChangeTypeDelete, "-"},
		{ChangeTypeNoop, " "},
	}
	for _, tt := range tests {
		if got := tt.changeType.Symbol(); got != tt.want {
			t.Errorf("%s.Symbol() = %q, want %q", tt.changeType, got, tt.want)
		}
	}
}

func TestScope_Matches(t *testing.T) {
	var nilScope *Scope
	if !nilScope.MatchesDomain("example.com") {
		t.Error("nil scope must match every domain")
	}
	if !nilScope.MatchesRecord("example.com", "www") {
		t.Error("nil scope must match every record")
	}

	scoped := &Scope{Domain: "example.com", Record: "www"}
	if scoped.MatchesDomain("other.com") {
		t.Error("domain scope must exclude other domains")
	}
	if !scoped.MatchesRecord("example.com", "WWW") {
		t.Error("record scope must match case-insensitively")
	}
	if scoped.MatchesRecord("example.com", "mail") {
		t.Error("record scope must exclude other hosts")
	}
	if scoped.IsEmpty() {
		t.Error("populated scope must not be empty")
	}
}
