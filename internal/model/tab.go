package model

import "strings"

// TabType names a kind of placement marker, in snake case.
type TabType string

const (
	TabSignHere    TabType = "sign_here"
	TabInitialHere TabType = "initial_here"
	TabDateSigned  TabType = "date_signed"
	TabFullName    TabType = "full_name"
	TabText        TabType = "text"
	TabCheckbox    TabType = "checkbox"
)

// Key returns the wire collection name for the type: "sign_here" becomes "signHereTabs".
func (t TabType) Key() string {
	parts := strings.Split(string(t), "_")
	var b strings.Builder
	for i, p := range parts {
		if p == "" {
			continue
		}
		if i == 0 || b.Len() == 0 {
			b.WriteString(strings.ToLower(p))
			continue
		}
		b.WriteString(strings.ToUpper(p[:1]))
		b.WriteString(strings.ToLower(p[1:]))
	}
	b.WriteString("Tabs")
	return b.String()
}

// TabAttributes are the placement and value fields of a tab, in wire order.
type TabAttributes struct {
	TabLabel                 string `json:"tabLabel,omitempty" yaml:"tab_label,omitempty"`
	Name                     string `json:"name,omitempty" yaml:"name,omitempty"`
	Value                    string `json:"value,omitempty" yaml:"value,omitempty"`
	PageNumber               int    `json:"pageNumber,omitempty" yaml:"page_number,omitempty"`
	XPosition                int    `json:"xPosition,omitempty" yaml:"x_position,omitempty"`
	YPosition                int    `json:"yPosition,omitempty" yaml:"y_position,omitempty"`
	AnchorString             string `json:"anchorString,omitempty" yaml:"anchor_string,omitempty"`
	AnchorXOffset            int    `json:"anchorXOffset,omitempty" yaml:"anchor_x_offset,omitempty"`
	AnchorYOffset            int    `json:"anchorYOffset,omitempty" yaml:"anchor_y_offset,omitempty"`
	AnchorUnits              string `json:"anchorUnits,omitempty" yaml:"anchor_units,omitempty"`
	AnchorIgnoreIfNotPresent bool   `json:"anchorIgnoreIfNotPresent,omitempty" yaml:"anchor_ignore_if_not_present,omitempty"`
	Width                    int    `json:"width,omitempty" yaml:"width,omitempty"`
	Height                   int    `json:"height,omitempty" yaml:"height,omitempty"`
	Optional                 bool   `json:"optional,omitempty" yaml:"optional,omitempty"`
	Locked                   bool   `json:"locked,omitempty" yaml:"locked,omitempty"`
}

// Tab marks where and how a recipient acts on a document.
type Tab struct {
	Type       TabType
	Attributes TabAttributes
}

func NewTab(t TabType, attrs TabAttributes) Tab {
	return Tab{Type: t, Attributes: attrs}
}

// NewAnchoredTab places a tab relative to the first occurrence of anchor in the document text.
func NewAnchoredTab(t TabType, anchor string, xOffset, yOffset int) Tab {
	return Tab{
		Type: t,
		Attributes: TabAttributes{
			AnchorString:             anchor,
			AnchorXOffset:            xOffset,
			AnchorYOffset:            yOffset,
			AnchorUnits:              "pixels",
			AnchorIgnoreIfNotPresent: false,
		},
	}
}

// Problems lists the reasons this tab cannot be placed.
func (t Tab) Problems() []string {
	var out []string
	if strings.TrimSpace(string(t.Type)) == "" {
		out = append(out, "tab type is required")
	}
	if t.Attributes.PageNumber <= 0 && t.Attributes.AnchorString == "" {
		out = append(out, "tab needs a page number or an anchor string")
	}
	return out
}
