package importers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/vzwadmin/beheer/internal/entities"
)

// ProjectCode is a parsed legacy project title such as
// "DK/22/090-2 - Goed in je vel".
type ProjectCode struct {
	Code         string
	Iteration    string
	Beschrijving string
}

// HasIteration reports whether the title named a specific activity of an
// existing project rather than the project itself.
func (p ProjectCode) HasIteration() bool {
	return p.Iteration != ""
}

// IsBaseIteration reports whether an explicit suffix names iteration 1,
// which is the activity the base row already creates.
func (p ProjectCode) IsBaseIteration() bool {
	n, err := strconv.Atoi(p.Iteration)
	return err == nil && n == 1
}

// ActiviteitKey identifies one activity of a project; the base row is
// iteration 1.
func (p ProjectCode) ActiviteitKey() string {
	it := p.Iteration
	if it == "" {
		it = "1"
	}
	if n, err := strconv.Atoi(it); err == nil {
		it = strconv.Itoa(n)
	}
	return FoldKey(p.Code) + "#" + it
}

var projectCodePattern = regexp.MustCompile(`^\s*([^\s/]+/\S+?)(?:-(\d+))?(?:\s+-\s+(.*?))?\s*$`)

// ParseProjectCode extracts code, optional iteration and description.
func ParseProjectCode(title string) (ProjectCode, bool) {
	m := projectCodePattern.FindStringSubmatch(title)
	if m == nil {
		return ProjectCode{}, false
	}
	return ProjectCode{
		Code:         strings.ToUpper(m[1]),
		Iteration:    m[2],
		Beschrijving: strings.TrimSpace(m[3]),
	}, true
}

// Jaar derives the project year from the second code segment (DK/22/090 is
// 2022). Returns 0 when the segment is not a two or four digit year.
func (p ProjectCode) Jaar() int {
	parts := strings.Split(p.Code, "/")
	if len(parts) < 2 {
		return 0
	}
	n, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0
	}
	switch len(parts[1]) {
	case 2:
		return 2000 + n
	case 4:
		return n
	}
	return 0
}

var onderdeelPrefixes = map[string]entities.Organisatieonderdeel{
	"DK":  entities.OrganisatieonderdeelDeKei,
	"KJ":  entities.OrganisatieonderdeelKeiJong,
	"KJB": entities.OrganisatieonderdeelKeiJongBuso,
	"KJN": entities.OrganisatieonderdeelKeiJongNietBuso,
	"V":   entities.OrganisatieonderdeelVakanties,
	"VK":  entities.OrganisatieonderdeelVakanties,
	"VAK": entities.OrganisatieonderdeelVakanties,
}

// Organisatieonderdeel maps the code prefix to the owning department,
// falling back to the default for the project type.
func (p ProjectCode) Organisatieonderdeel(t entities.ProjectType) entities.Organisatieonderdeel {
	prefix := strings.SplitN(p.Code, "/", 2)[0]
	if o, ok := onderdeelPrefixes[prefix]; ok {
		return o
	}
	if t == entities.ProjectTypeVakantie {
		return entities.OrganisatieonderdeelVakanties
	}
	return entities.OrganisatieonderdeelDeKei
}
