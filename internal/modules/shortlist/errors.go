package shortlist

import "errors"

var (
	ErrNoProfile         = errors.New("actor has no profile")
	ErrTargetNotFound    = errors.New("target profile not found")
	ErrTargetNotActive   = errors.New("target profile is not active")
	ErrSelfShortlist     = errors.New("cannot shortlist own profile")
	ErrDuplicate         = errors.New("profile already shortlisted")
	ErrShortlistNotFound = errors.New("shortlist entry not found")
	ErrNotRecipient      = errors.New("only the recipient can respond")
	ErrNotSender         = errors.New("only the sender can withdraw")
	ErrAlreadyDecided    = errors.New("shortlist entry already decided")
)
