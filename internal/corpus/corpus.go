package corpus

// Location identifies where in a project's source a known misuse lives.
// File is project-relative; Method is the full signature as recorded in the
// benchmark, e.g. "void foo(int)".
type Location struct {
	File   string `yaml:"file"`
	Method string `yaml:"method"`
}

// Misuse is one documented API misuse from the benchmark corpus. It is
// read-only for this tool; Attributes carries any additional metadata the
// corpus records (api, description, fix, ...) without interpreting it.
type Misuse struct {
	ID         string
	Location   Location
	Attributes map[string]interface{}
}

// UnmarshalYAML keeps the location explicit and collects every other key
// into the open attribute bag.
func (m *Misuse) UnmarshalYAML(unmarshal func(interface{}) error) error {
	var known struct {
		Location Location `yaml:"location"`
	}
	if err := unmarshal(&known); err != nil {
		return err
	}

	var all map[string]interface{}
	if err := unmarshal(&all); err != nil {
		return err
	}
	delete(all, "location")

	m.Location = known.Location
	m.Attributes = all
	return nil
}

func (m *Misuse) String() string {
	return m.ID
}

// Repository describes where a project's sources come from.
type Repository struct {
	Type string `yaml:"type"`
	URL  string `yaml:"url"`
}

// Project is one benchmark project with its versions and known misuses.
type Project struct {
	ID         string
	Name       string     `yaml:"name"`
	Repository Repository `yaml:"repository"`
	Versions   []*ProjectVersion `yaml:"-"`

	misuses map[string]*Misuse
}

// Misuse returns the project's misuse with the given id, or nil.
func (p *Project) Misuse(id string) *Misuse {
	return p.misuses[id]
}

// ProjectVersion is one analyzable revision of a project together with the
// misuses it exhibits, in the order the version file lists them.
type ProjectVersion struct {
	VersionID string
	Revision  string    `yaml:"revision"`
	MisuseIDs []string  `yaml:"misuses"`
	Misuses   []*Misuse `yaml:"-"`
}

func (v *ProjectVersion) String() string {
	return v.VersionID
}
