package models

import "time"

// Lifecycle states of a maintenance request. Cancel is a soft delete; rows
// are never removed.
const (
	StatusOpen       = "open"
	StatusEnRoute    = "en route"
	StatusInProgress = "in progress"
	StatusBlocked    = "blocked"
	StatusCompleted  = "completed"
	StatusCanceled   = "canceled"
)

const DefaultPriority = "normal"

// MaintenanceRequest is the flat projection returned by the listing API.
// PhotoURL and InlineNotes are legacy single-value columns used as fallback
// when the dedicated photo/note tables are absent.
type MaintenanceRequest struct {
	ID                  int64      `db:"id" json:"requestID"`
	IssueType           string     `db:"issue_type" json:"issueType"`
	Description         string     `db:"issue_description" json:"description"`
	ActiveStatus        string     `db:"active_status" json:"activeStatus"`
	Priority            string     `db:"priority" json:"priority"`
	DateRequested       time.Time  `db:"date_requested" json:"dateRequested"`
	DateCompleted       *time.Time `db:"date_completed" json:"dateCompleted"`
	BuildingID          int64      `db:"building_id" json:"buildingID"`
	AptNumber           *int       `db:"apt_number" json:"aptNumber"`
	StudentRequestingID *int64     `db:"student_requesting_id" json:"studentRequestingID"`
	PhotoURL            *string    `db:"photo_url" json:"-"`
	InlineNotes         *string    `db:"notes" json:"-"`
}

// RequestFilter captures the supported listing filters. Any combination of
// fields may be set; zero values mean "no filter".
type RequestFilter struct {
	StudentID  *int64
	EmployeeID *int64
	Status     string
	Priority   string
	StartDate  *time.Time
	EndDate    *time.Time
	Limit      int
	Offset     int
}

// RequestPhoto is one attachment row for a request.
type RequestPhoto struct {
	ID         int64     `db:"id" json:"photoID"`
	FilePath   string    `db:"file_path" json:"filePath"`
	UploadedAt time.Time `db:"uploaded_at" json:"uploadedAt"`
}

// RequestNote is one comment left on a request.
type RequestNote struct {
	ID        int64     `db:"id" json:"noteID"`
	AuthorID  *int64    `db:"author_id" json:"authorID"`
	Body      string    `db:"body" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
}

// RequestHistoryEntry is one status transition in the request timeline.
type RequestHistoryEntry struct {
	ID        int64     `db:"id" json:"historyID"`
	OldStatus string    `db:"old_status" json:"oldStatus"`
	NewStatus string    `db:"new_status" json:"newStatus"`
	ChangedBy *int64    `db:"changed_by" json:"changedBy"`
	ChangedAt time.Time `db:"changed_at" json:"changedAt"`
	Note      string    `db:"note" json:"note"`
}

// RequestPart is a part consumed by a request, joined through parts_used.
type RequestPart struct {
	PartID   int64   `db:"part_id" json:"partID"`
	Name     string  `db:"name" json:"name"`
	Quantity int     `db:"quantity" json:"quantity"`
	Cost     float64 `db:"cost" json:"cost"`
}

// RequestDetail aggregates the request row with its related collections.
// Every collection degrades independently to an empty slice when its data
// source is unavailable.
type RequestDetail struct {
	MaintenanceRequest
	BuildingAddress   *string               `db:"building_address" json:"buildingAddress"`
	Photos            []RequestPhoto        `json:"photos"`
	Notes             []RequestNote         `json:"notes"`
	History           []RequestHistoryEntry `json:"history"`
	AssignedEmployees []Employee            `json:"assignedEmployees"`
	Parts             []RequestPart         `json:"parts"`
}

// RequestPatch enumerates the patchable request fields. External payload
// keys map onto these: "status" patches the active-status column and
// "description" the issue-description column.
type RequestPatch struct {
	IssueType     *string
	Description   *string
	ActiveStatus  *string
	Priority      *string
	BuildingID    *int64
	AptNumber     *int
	DateCompleted *time.Time
}

// Empty reports whether no field is present.
func (p RequestPatch) Empty() bool {
	return p.IssueType == nil && p.Description == nil && p.ActiveStatus == nil &&
		p.Priority == nil && p.BuildingID == nil && p.AptNumber == nil && p.DateCompleted == nil
}

// Capabilities records which optional tables exist in the connected schema.
// Resolved once at startup so that degrade-to-empty behaviour is an explicit
// branch rather than a swallowed per-request failure.
type Capabilities struct {
	Photos  bool
	Notes   bool
	History bool
}
