package flow

// Screen is one navigable view in the message composition wizard.
type Screen string

const (
	ScreenOnboarding       Screen = "onboarding"
	ScreenAuth             Screen = "auth"
	ScreenDashboard        Screen = "dashboard"
	ScreenRecipients       Screen = "recipients"
	ScreenAuthedRecipients Screen = "authenticated-recipients"
	ScreenUpgrade          Screen = "upgrade"
	ScreenStatus           Screen = "status"
	ScreenRefund           Screen = "refund"
	ScreenFAQ              Screen = "faq"
)

// Event is a navigation trigger.
type Event string

const (
	EventNext        Event = "next"
	EventBack        Event = "back"
	EventOpenFAQ     Event = "open-faq"
	EventOpenAuth    Event = "open-auth"
	EventCreateNew   Event = "create-new"
	EventSignIn      Event = "sign-in"
	EventSignOut     Event = "sign-out"
	EventSubmitDraft Event = "submit-draft"
	EventPersisted   Event = "persisted"
)

// State is the navigation position of one wizard session.
type State struct {
	Screen Screen `json:"screen"`
	Authed bool   `json:"authed"`
}

// Initial is the state of a brand-new session.
func Initial() State {
	return State{Screen: ScreenOnboarding}
}

// ValidScreen reports whether s names a known screen.
func ValidScreen(s Screen) bool {
	switch s {
	case ScreenOnboarding, ScreenAuth, ScreenDashboard, ScreenRecipients,
		ScreenAuthedRecipients, ScreenUpgrade, ScreenStatus, ScreenRefund, ScreenFAQ:
		return true
	}
	return false
}

// Transition computes the next state from the current one and an event.
// It is pure: no session lookup, no storage, no side effects.
func Transition(s State, e Event) State {
	switch e {
	case EventNext:
		return next(s)
	case EventBack:
		return back(s)
	case EventOpenFAQ:
		if s.Screen != ScreenFAQ {
			s.Screen = ScreenFAQ
		}
		return s
	case EventOpenAuth:
		if !s.Authed && s.Screen != ScreenAuth && s.Screen != ScreenFAQ {
			s.Screen = ScreenAuth
		}
		return s
	case EventCreateNew:
		if s.Authed && s.Screen == ScreenDashboard {
			s.Screen = ScreenAuthedRecipients
		}
		return s
	case EventSignIn:
		return State{Screen: ScreenDashboard, Authed: true}
	case EventSignOut:
		return State{Screen: ScreenOnboarding, Authed: false}
	case EventSubmitDraft:
		s.Screen = ScreenUpgrade
		return s
	case EventPersisted:
		s.Screen = ScreenDashboard
		return s
	}
	return s
}

func next(s State) State {
	switch s.Screen {
	case ScreenOnboarding:
		if s.Authed {
			s.Screen = ScreenDashboard
		} else {
			s.Screen = ScreenRecipients
		}
	case ScreenRecipients:
		s.Screen = ScreenUpgrade
	case ScreenAuthedRecipients:
		s.Screen = ScreenUpgrade
	case ScreenUpgrade:
		s.Screen = ScreenStatus
	case ScreenStatus:
		s.Screen = ScreenRefund
	case ScreenRefund:
		s.Screen = ScreenOnboarding
	default:
		// Not a valid source for a forward step
		s.Screen = ScreenOnboarding
	}
	return s
}

func back(s State) State {
	switch s.Screen {
	case ScreenRecipients:
		s.Screen = ScreenOnboarding
	case ScreenUpgrade:
		if s.Authed {
			s.Screen = ScreenAuthedRecipients
		} else {
			s.Screen = ScreenRecipients
		}
	case ScreenStatus:
		s.Screen = ScreenUpgrade
	case ScreenRefund:
		s.Screen = ScreenStatus
	case ScreenFAQ:
		s.Screen = fallback(s.Authed)
	case ScreenAuth:
		s.Screen = ScreenOnboarding
	case ScreenAuthedRecipients:
		s.Screen = ScreenDashboard
	default:
		s.Screen = fallback(s.Authed)
	}
	return s
}

func fallback(authed bool) Screen {
	if authed {
		return ScreenDashboard
	}
	return ScreenOnboarding
}
