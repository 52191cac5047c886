package models

type AccountRole string
type AccountStatus string
type MediaKind string

const (
	RoleArtist    AccountRole = "artist"
	RoleRecruiter AccountRole = "recruiter"
	RoleAdmin     AccountRole = "admin"

	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"

	MediaPhoto MediaKind = "photo"
	MediaVideo MediaKind = "video"
)

func (r AccountRole) IsValid() bool {
	switch r {
	case RoleArtist, RoleRecruiter, RoleAdmin:
		return true
	}
	return false
}

// IsDecision reports whether s is a status an admin may set. pending is only ever the initial state.
func (s AccountStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

func (k MediaKind) IsValid() bool {
	return k == MediaPhoto || k == MediaVideo
}

// Column is the account column holding the kind's URL sequence.
func (k MediaKind) Column() string {
	if k == MediaVideo {
		return "videos"
	}
	return "photos"
}

// Folder is the object store sub-folder used for the kind.
func (k MediaKind) Folder() string {
	return k.Column()
}
