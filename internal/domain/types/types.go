package types

// Page is the value of the `page` query parameter selecting a page handler.
type Page string

func (p Page) String() string {
	return string(p)
}

const (
	PageHome        Page = "home"
	PageAddUser     Page = "addUser"
	PageUserCreated Page = "user-created"
	PageUserProfile Page = "userProfile"
	PageLapTimeForm Page = "lapTimeForm"
	PageLeaderboard Page = "leaderboard"
	PageDeleteLap   Page = "deleteLap"
	PageLogout      Page = "logout"
)

// Template names a view template.
type Template string

func (t Template) String() string {
	return string(t)
}

const (
	TemplateHome        Template = "home"
	TemplateUserCreate  Template = "user-create"
	TemplateUserCreated Template = "user-created"
	TemplateUserProfile Template = "user-profile"
	TemplateLapForm     Template = "lap-form"
	TemplateLeaderboard Template = "leaderboard"
	TemplateLogout      Template = "logout"
)

// Enum для роли пользователя
type UserRole string

func (r UserRole) String() string {
	return string(r)
}

const (
	DriverRole UserRole = "Driver"
)

// IdentifierKind pins what the user identifier field holds.
type IdentifierKind string

const (
	IdentifierEmail         IdentifierKind = "email"
	IdentifierStudentNumber IdentifierKind = "student_number"
)

func (k IdentifierKind) Valid() bool {
	switch k {
	case IdentifierEmail, IdentifierStudentNumber:
		return true
	default:
		return false
	}
}

// FormField returns the request field carrying the identifier.
func (k IdentifierKind) FormField() string {
	if k == IdentifierStudentNumber {
		return "studentNumber"
	}
	return "email"
}

// Label returns a human readable field label.
func (k IdentifierKind) Label() string {
	if k == IdentifierStudentNumber {
		return "Student number"
	}
	return "Email"
}

// SessionBackend selects the session store implementation.
type SessionBackend string

const (
	MemoryBackend   SessionBackend = "memory"
	PostgresBackend SessionBackend = "postgres"
)

func (b SessionBackend) Valid() bool {
	return b == MemoryBackend || b == PostgresBackend
}

// LapOrder selects how the lap log is listed.
type LapOrder string

const (
	OrderInsertion LapOrder = "insertion"
	OrderFastest   LapOrder = "fastest"
)

// ParseLapOrder maps a query value to a LapOrder; anything unknown keeps insertion order.
func ParseLapOrder(s string) LapOrder {
	if LapOrder(s) == OrderFastest {
		return OrderFastest
	}
	return OrderInsertion
}
