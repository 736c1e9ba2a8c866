package valueobject

import "sort"

type Plan struct {
	changes []*Change
	scope   *Scope
}

func NewPlan() *Plan {
	return NewPlanWithScope(nil)
}

func NewPlanWithScope(scope *Scope) *Plan {
	if scope == nil {
		scope = &Scope{}
	}
	return &Plan{
		changes: make([]*Change, 0),
		scope:   scope,
	}
}

func (p *Plan) Changes() []*Change { return p.changes }
func (p *Plan) Scope() *Scope      { return p.scope }

func (p *Plan) AddChange(ch *Change) {
	p.changes = append(p.changes, ch)
}

func (p *Plan) HasChanges() bool {
	for _, c := range p.changes {
		if c.Type() != ChangeTypeNoop {
			return true
		}
	}
	return false
}

func (p *Plan) FilterByType(changeType ChangeType) []*Change {
	var result []*Change
	for _, c := range p.changes {
		if c.Type() == changeType {
			result = append(result, c)
		}
	}
	return result
}

// Sort orders changes deterministically: deletes first (so replacing a
// record set never trips duplicate checks at the registrar), then updates,
// then creates, each group by name.
func (p *Plan) Sort() {
	rank := func(ct ChangeType) int {
		switch ct {
		case ChangeTypeDelete:
			return 0
		case ChangeTypeUpdate:
			return 1
		case ChangeTypeCreate:
			return 2
		default:
			return 3
		}
	}
	sort.SliceStable(p.changes, func(i, j int) bool {
		ri, rj := rank(p.changes[i].Type()), rank(p.changes[j].Type())
		if ri != rj {
			return ri < rj
		}
		return p.changes[i].Name() < p.changes[j].Name()
	})
}
