package valueobject

type ChangeType int

const (
	ChangeTypeNoop ChangeType = iota
	ChangeTypeCreate
	ChangeTypeUpdate
	ChangeTypeDelete
)

func (ct ChangeType) String() string {
	switch ct {
	case ChangeTypeNoop:
		return "NOOP"
	case ChangeTypeCreate:
		return "CREATE"
	case ChangeTypeUpdate:
		return "UPDATE"
	case ChangeTypeDelete:
		return "DELETE"
	default:
		return "UNKNOWN"
	}
}

// Symbol is the one-character plan prefix (+/~/-) for the change type.
func (ct ChangeType) Symbol() string {
	switch ct {
	case ChangeTypeCreate:
		return "+"
	case ChangeTypeUpdate:
		return "~"
	case ChangeTypeDelete:
		return "-"
	default:
		return " "
	}
}

// Change is one planned mutation of a remote zone. Old carries the live
// record for updates and deletes, New the desired record for creates and
// updates.
type Change struct {
	changeType ChangeType
	entity     string
	name       string
	oldState   interface{}
	newState   interface{}
}

func NewChange(changeType ChangeType, entity, name string, oldState, newState interface{}) *Change {
	return &Change{
		changeType: changeType,
		entity:     entity,
		name:       name,
		oldState:   oldState,
		newState:   newState,
	}
}

func (c *Change) Type() ChangeType      { return c.changeType }
func (c *Change) Entity() string        { return c.entity }
func (c *Change) Name() string          { return c.name }
func (c *Change) OldState() interface{} { return c.oldState }
func (c *Change) NewState() interface{} { return c.newState }

func (c *Change) Equals(other *Change) bool {
	if other == nil {
		return false
	}
	return c.changeType == other.changeType &&
		c.entity == other.entity &&
		c.name == other.name
}
