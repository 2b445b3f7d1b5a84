package scene

// Ref is a non-owning handle to a scene object. Editor components keep refs
// and resolve them through the scene on use, so a disposed object simply
// stops resolving.
//
// Example:
//
//	var selected scene.Ref
//	selected.Set(mesh)
//	if obj := selected.Get(s); obj != nil {
//	    // use obj
//	}
type Ref struct {
	ID string
}

func RefTo(obj Object) Ref {
	if obj == nil {
		return Ref{}
	}
	return Ref{ID: obj.ID()}
}

// Get resolves the reference. It returns nil for an empty ref or when the
// object is no longer in the scene.
func (r Ref) Get(s *Scene) Object {
	if r.ID == "" || s == nil {
		return nil
	}
	return s.Lookup(r.ID)
}

// IsValid reports whether the ref points at something. It does not check
// that the object still exists.
func (r Ref) IsValid() bool {
	return r.ID != ""
}

func (r *Ref) Set(obj Object) {
	if obj == nil {
		r.ID = ""
		return
	}
	r.ID = obj.ID()
}

func (r *Ref) Clear() {
	r.ID = ""
}
