// Package nav defines the backoffice navigation tree and the pure filter
// that reduces it to what the signed-in identity may see. Filtering uses
// the same access snapshot as the route guard, so the menu and the guard
// cannot disagree.
package nav

import (
	"github.com/cccteam/ccc/accesstypes"
	"github.com/playline/backoffice/identity"
	"github.com/playline/backoffice/permission"
)

// Item is one node of the static navigation tree. Items carry their
// gating requirements as data; visibility is computed by Filter.
type Item struct {
	Name               string                 `json:"name"`
	TranslationKey     string                 `json:"translationKey,omitempty"`
	Icon               string                 `json:"icon,omitempty"`
	Path               string                 `json:"path,omitempty"`
	RequiredPermission accesstypes.Permission `json:"-"`
	RequiredActors     []identity.Actor       `json:"-"`
	Items              []Item                 `json:"items,omitempty"`
}

// Filter returns the visible subset of items for the given access
// snapshot. A leaf is visible iff its permission and actor requirements
// pass. A parent must pass its own requirements and keep at least one
// visible child; a parent with no visible children is omitted entirely.
// The input tree is never mutated.
func Filter(items []Item, access permission.Access) []Item {
	var visible []Item
	for _, item := range items {
		if !access.Allows(item.RequiredPermission) || !access.AllowsActor(item.RequiredActors...) {
			continue
		}

		if len(item.Items) == 0 {
			visible = append(visible, item)

			continue
		}

		children := Filter(item.Items, access)
		if len(children) == 0 {
			continue
		}

		item.Items = children
		visible = append(visible, item)
	}

	return visible
}
