package domain

import "time"

// PublishState is the lifecycle state of a content item.
type PublishState string

const (
	StateDraft     PublishState = "draft"
	StatePublished PublishState = "published"
)

// Lifecycle holds the publication workflow columns shared by every
// approvable content kind.
//
// Invariant: IsPublished implies ApprovedBy and ApprovedAt are set and
// ApprovedBy named an admin when Approve ran.
type Lifecycle struct {
	CreatedBy      string     `json:"created_by" gorm:"column:created_by;size:64;not null"`
	LastModifiedBy string     `json:"last_modified_by" gorm:"column:last_modified_by;size:64;not null"`
	IsPublished    bool       `json:"is_published" gorm:"column:is_published;not null;default:false"`
	ApprovedBy     *string    `json:"approved_by" gorm:"column:approved_by;size:64"`
	ApprovedAt     *time.Time `json:"approved_at" gorm:"column:approved_at"`
}

// State reports Draft or Published.
func (l *Lifecycle) State() PublishState {
	if l.IsPublished {
		return StatePublished
	}
	return StateDraft
}

// Draft resets the item to a freshly created draft owned by creator.
func (l *Lifecycle) Draft(creator string) {
	l.CreatedBy = creator
	l.Revise(creator)
}

// Revise records an edit. Any edit reverts the item to draft and drops the
// previous approval.
func (l *Lifecycle) Revise(editor string) {
	l.LastModifiedBy = editor
	l.IsPublished = false
	l.ApprovedBy = nil
	l.ApprovedAt = nil
}

// Approve publishes the item on behalf of approver. Re-approving an item
// already published by the same admin leaves it untouched.
func (l *Lifecycle) Approve(approver *User, at time.Time) error {
	if approver == nil || !approver.IsAdmin {
		return ErrNotApprover
	}
	if l.IsPublished && l.ApprovedBy != nil && *l.ApprovedBy == approver.Username {
		return nil
	}

	name := approver.Username
	at = at.UTC()
	l.IsPublished = true
	l.ApprovedBy = &name
	l.ApprovedAt = &at
	l.LastModifiedBy = approver.Username
	return nil
}

// Content is implemented by every kind the lifecycle engine manages.
type Content interface {
	ContentID() int64
	SetContentID(id int64)
	Workflow() *Lifecycle
}

// Service is an offering shown on the public site once approved.
type Service struct {
	ID          int64  `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	Title       string `json:"title" gorm:"column:title;size:255;not null"`
	Description string `json:"description" gorm:"column:description;type:text"`
	Image       string `json:"image" gorm:"column:image;size:512"`
	Lifecycle   `gorm:"embedded"`
}

func (Service) TableName() string { return "service" }

func (s *Service) ContentID() int64 { return s.ID }

func (s *Service) SetContentID(id int64) { s.ID = id }

func (s *Service) Workflow() *Lifecycle { return &s.Lifecycle }

// Project is a portfolio entry filed under a category.
type Project struct {
	ID           int64  `json:"project_id" gorm:"column:project_id;primaryKey;autoIncrement"`
	ProjectImage string `json:"project_image" gorm:"column:project_image;size:512"`
	CategoryID   int64  `json:"category_id" gorm:"column:category_id;index;not null"`
	Lifecycle    `gorm:"embedded"`
}

func (Project) TableName() string { return "project" }

func (p *Project) ContentID() int64 { return p.ID }

func (p *Project) SetContentID(id int64) { p.ID = id }

func (p *Project) Workflow() *Lifecycle { return &p.Lifecycle }
