package model

import (
	"fmt"
	"strings"
)

// ChangeType represents the kind of layout change detected.
type ChangeType string

const (
	ChangeAdded   ChangeType = "added"
	ChangeRemoved ChangeType = "removed"
	ChangeChanged ChangeType = "changed"
)

// Change is a single container-level difference between two snapshots.
type Change struct {
	Type      ChangeType           `yaml:"type"              json:"type"`
	Container uint32               `yaml:"container"         json:"container"`
	Changes   map[string][2]string `yaml:"changes,omitempty" json:"changes,omitempty"` // For changed: field diffs
}

// DiffLayouts compares two snapshots and returns the changes, in the order
// of curr followed by removed containers in the order of prev. Containers
// are matched by frame window.
func DiffLayouts(prev, curr Layout) []Change {
	prevMap := make(map[uint32]Container, len(prev.Containers))
	for _, c := range prev.Containers {
		prevMap[c.Window] = c
	}
	currMap := make(map[uint32]bool, len(curr.Containers))
	for _, c := range curr.Containers {
		currMap[c.Window] = true
	}

	var changes []Change
	for _, c := range curr.Containers {
		old, existed := prevMap[c.Window]
		if !existed {
			changes = append(changes, Change{Type: ChangeAdded, Container: c.Window})
			continue
		}
		if diffs := diffContainer(old, c); len(diffs) > 0 {
			changes = append(changes, Change{Type: ChangeChanged, Container: c.Window, Changes: diffs})
		}
	}
	for _, c := range prev.Containers {
		if !currMap[c.Window] {
			changes = append(changes, Change{Type: ChangeRemoved, Container: c.Window})
		}
	}
	return changes
}

// diffContainer compares two versions of a container and returns changed fields.
func diffContainer(prev, curr Container) map[string][2]string {
	diffs := make(map[string][2]string)

	if prev.Bounds != curr.Bounds {
		diffs["bounds"] = [2]string{fmt.Sprintf("%v", prev.Bounds), fmt.Sprintf("%v", curr.Bounds)}
	}
	if prev.Focused != curr.Focused {
		diffs["focused"] = [2]string{fmt.Sprintf("%v", prev.Focused), fmt.Sprintf("%v", curr.Focused)}
	}
	if a, b := clientIDs(prev.Clients), clientIDs(curr.Clients); a != b {
		diffs["clients"] = [2]string{a, b}
	}
	if a, b := activeClient(prev.Clients), activeClient(curr.Clients); a != b {
		diffs["active"] = [2]string{a, b}
	}
	if a, b := titles(prev.Clients), titles(curr.Clients); a != b {
		diffs["titles"] = [2]string{a, b}
	}

	if len(diffs) == 0 {
		return nil
	}
	return diffs
}

func clientIDs(clients []Client) string {
	ids := make([]string, len(clients))
	for i, c := range clients {
		ids[i] = fmt.Sprintf("0x%x", c.Window)
	}
	return strings.Join(ids, ",")
}

func activeClient(clients []Client) string {
	for _, c := range clients {
		if c.Active {
			return fmt.Sprintf("0x%x", c.Window)
		}
	}
	return ""
}

func titles(clients []Client) string {
	t := make([]string, len(clients))
	for i, c := range clients {
		t[i] = c.Title
	}
	return strings.Join(t, "|")
}
