package social

// Registry holds the known platforms in a fixed order so listings are stable.
// Dispatch goes through the Platform interface; nothing here branches on the
// concrete type.
type Registry struct {
	names     []string
	platforms map[string]Platform
}

func NewRegistry(platforms ...Platform) *Registry {
	r := &Registry{platforms: make(map[string]Platform)}
	for _, p := range platforms {
		if _, exists := r.platforms[p.Name()]; exists {
			continue
		}
		r.names = append(r.names, p.Name())
		r.platforms[p.Name()] = p
	}
	return r
}

func (r *Registry) Get(name string) (Platform, bool) {
	p, ok := r.platforms[name]
	return p, ok
}

func (r *Registry) List() []Platform {
	list := make([]Platform, 0, len(r.names))
	for _, name := range r.names {
		list = append(list, r.platforms[name])
	}
	return list
}
