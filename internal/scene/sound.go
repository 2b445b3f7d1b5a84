package scene

// SoundTrack groups sounds for the audio folder of the graph. It is not an
// object of its own: it has no panel and cannot be picked.
type SoundTrack struct {
	ID     string
	Name   string
	Sounds []string
}

func NewSoundTrack(id, name string) *SoundTrack {
	if id == "" {
		id = NewID()
	}
	return &SoundTrack{ID: id, Name: name}
}

func (t *SoundTrack) References(id string) bool { return containsID(t.Sounds, id) }

func (t *SoundTrack) ReleaseReference(id string) bool {
	t.Sounds = removeID(t.Sounds, id)
	return false
}

type Sound struct {
	Header
	URL            string
	Volume         float32
	Loop           bool
	Autoplay       bool
	Spatial        bool
	SoundTrackID   string
	AttachedMeshID string
}

func NewSound(id, name, url string) *Sound {
	return &Sound{
		Header: newHeader(id, name, KindSound),
		URL:    url,
		Volume: 1,
	}
}

func (s *Sound) References(id string) bool { return s.AttachedMeshID == id }

func (s *Sound) ReleaseReference(id string) bool {
	if s.AttachedMeshID == id {
		s.AttachedMeshID = ""
		s.Spatial = false
	}
	return false
}
