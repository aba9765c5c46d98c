package commands

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
	"github.com/pixil98/go-errors"
)

// templateFuncs provides utility functions for templates.
var templateFuncs = sprig.TxtFuncMap()

// Messages holds the text/template source of every reply a command can
// send. Templates may use sprig functions.
type Messages struct {
	HomeSet          string `json:"home_set"`
	HomeLimit        string `json:"home_limit"`
	InvalidLocation  string `json:"invalid_location"`
	HomeDeleted      string `json:"home_deleted"`
	HomeNotFound     string `json:"home_not_found"`
	HomeTeleport     string `json:"home_teleport"`
	HomeList         string `json:"home_list"`
	NoHomes          string `json:"no_homes"`
	Back             string `json:"back"`
	NoBack           string `json:"no_back"`
	UnknownDimension string `json:"unknown_dimension"`
	Saved            string `json:"saved"`
}

func DefaultMessages() Messages {
	return Messages{
		HomeSet:          `Home '{{ .Name }}' set ({{ .Count }}/{{ .Max }}).`,
		HomeLimit:        `You can only have {{ .Max }} {{ .Max | plural "home" "homes" }}. Delete one first.`,
		InvalidLocation:  `You cannot set a home here.`,
		HomeDeleted:      `Home '{{ .Name }}' deleted.`,
		HomeNotFound:     `You have no home called '{{ .Name }}'.`,
		HomeTeleport:     `Teleported to home '{{ .Name }}'.`,
		HomeList:         `Homes ({{ .Count }}/{{ .Max }}): {{ .Names | join ", " }}`,
		NoHomes:          `You have not set any homes. Use /sethome to set one.`,
		Back:             `Returned to {{ .Location }}.`,
		NoBack:           `There is nowhere to go back to.`,
		UnknownDimension: `The dimension '{{ .Dimension }}' is not loaded.`,
		Saved:            `Homes saved.`,
	}
}

type messageTemplates struct {
	homeSet          *template.Template
	homeLimit        *template.Template
	invalidLocation  *template.Template
	homeDeleted      *template.Template
	homeNotFound     *template.Template
	homeTeleport     *template.Template
	homeList         *template.Template
	noHomes          *template.Template
	back             *template.Template
	noBack           *template.Template
	unknownDimension *template.Template
	saved            *template.Template
}

// compile parses every message, reporting all broken templates at once.
func (m Messages) compile() (*messageTemplates, error) {
	el := errors.NewErrorList()
	parse := func(name, src string) *template.Template {
		tmpl, err := template.New(name).Funcs(templateFuncs).Parse(src)
		if err != nil {
			el.Add(fmt.Errorf("parsing %s template: %w", name, err))
		}
		return tmpl
	}

	mt := &messageTemplates{
		homeSet:          parse("home_set", m.HomeSet),
		homeLimit:        parse("home_limit", m.HomeLimit),
		invalidLocation:  parse("invalid_location", m.InvalidLocation),
		homeDeleted:      parse("home_deleted", m.HomeDeleted),
		homeNotFound:     parse("home_not_found", m.HomeNotFound),
		homeTeleport:     parse("home_teleport", m.HomeTeleport),
		homeList:         parse("home_list", m.HomeList),
		noHomes:          parse("no_homes", m.NoHomes),
		back:             parse("back", m.Back),
		noBack:           parse("no_back", m.NoBack),
		unknownDimension: parse("unknown_dimension", m.UnknownDimension),
		saved:            parse("saved", m.Saved),
	}

	if err := el.Err(); err != nil {
		return nil, err
	}
	return mt, nil
}

// expand executes tmpl against data.
func expand(tmpl *template.Template, data any) (string, error) {
	var buf bytes.Buffer
	err := tmpl.Execute(&buf, data)
	if err != nil {
		return "", fmt.Errorf("executing %s template: %w", tmpl.Name(), err)
	}

	return buf.String(), nil
}

// Validate reports every message that fails to parse.
func (m Messages) Validate() error {
	_, err := m.compile()
	return err
}
