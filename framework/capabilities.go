package framework

// Capabilities is the set of optional integrations a service reports as configured.
type Capabilities []string

func (c Capabilities) Has(name string) bool {
	for _, s := range c {
		if s == name {
			return true
		}
	}
	return false
}

// Missing returns the members of all that are not in c, preserving the order of all.
func (c Capabilities) Missing(all []string) []string {
	var ret []string
	for _, name := range all {
		if !c.Has(name) {
			ret = append(ret, name)
		}
	}
	return ret
}
