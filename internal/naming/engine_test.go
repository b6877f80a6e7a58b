package naming

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/uicontracts/uic/internal/model"
)

func TestName_SimpleClick(t *testing.T) {
	elements := []model.RawElement{
		{Type: model.Button, FilePath: "a.tsx", Line: 1, Column: 1, Handler: "handleClick"},
	}
	named := Name(elements)
	assert.Equal(t, "click.button", named[0].AgentID)
}

func TestName_RouteAndComponent(t *testing.T) {
	elements := []model.RawElement{
		{
			Type: model.Button, FilePath: "a.tsx", Line: 10, Column: 3,
			Route: "/settings/billing", ComponentName: "BillingSettings", Handler: "handlePauseSubscription",
		},
	}
	named := Name(elements)
	assert.Equal(t, "settings.billing.billing-settings.pause-subscription.button", named[0].AgentID)
}

func TestName_CollisionSuffix(t *testing.T) {
	elements := []model.RawElement{
		{Type: model.Anchor, FilePath: "a.tsx", Line: 1, Column: 1, Label: "Home"},
		{Type: model.Anchor, FilePath: "b.tsx", Line: 1, Column: 1, Label: "Home"},
	}
	named := Name(elements)
	assert.Equal(t, "home.a", named[0].AgentID)
	assert.Equal(t, "home.a-2", named[1].AgentID)
}

func TestName_IsStableUnderInputOrder(t *testing.T) {
	a := model.RawElement{Type: model.Button, FilePath: "a.tsx", Line: 5, Column: 1, Label: "Save"}
	b := model.RawElement{Type: model.Button, FilePath: "a.tsx", Line: 1, Column: 1, Label: "Cancel"}

	first := Name([]model.RawElement{a, b})
	second := Name([]model.RawElement{b, a})

	assert.Equal(t, first[0].AgentID, second[0].AgentID)
	assert.Equal(t, first[1].AgentID, second[1].AgentID)
}

func TestName_GenericComponentNameIsDropped(t *testing.T) {
	elements := []model.RawElement{
		{
			Type: model.Button, FilePath: "a.tsx", Line: 1, Column: 1,
			Route: "/settings", ComponentName: "Page", Handler: "handleSave",
		},
	}
	named := Name(elements)
	assert.Equal(t, "settings.save.button", named[0].AgentID)
}

func TestName_NeverSingleSegment(t *testing.T) {
	elements := []model.RawElement{{Type: model.Div}}
	named := Name(elements)
	assert.Contains(t, named[0].AgentID, ".")
}
