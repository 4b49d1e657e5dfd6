package models

import (
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// DocumentKind selects one of the four document tables. The set is closed:
// only values present in documentTables resolve to storage.
type DocumentKind string

const (
	KindMinutes     DocumentKind = "minutes"
	KindReports     DocumentKind = "reports"
	KindStatements  DocumentKind = "statements"
	KindCommissions DocumentKind = "commissions"
)

var ErrUnknownDocumentKind = errors.New("unknown document kind")

// DocumentKinds lists the kinds in display order.
var DocumentKinds = []DocumentKind{KindMinutes, KindReports, KindStatements, KindCommissions}

// ParseDocumentKind maps a route parameter onto a known kind.
func ParseDocumentKind(raw string) (DocumentKind, error) {
	kind := DocumentKind(strings.ToLower(strings.TrimSpace(raw)))
	if _, ok := documentTables[kind]; !ok {
		return "", ErrUnknownDocumentKind
	}
	return kind, nil
}

func (k DocumentKind) String() string { return string(k) }

// Title is the capitalized kind, used for sheet names and mail subjects.
func (k DocumentKind) Title() string {
	if k == "" {
		return ""
	}
	return strings.ToUpper(string(k[:1])) + string(k[1:])
}

// DocumentFields is the shape shared by the four document tables.
type DocumentFields struct {
	ID      uint      `gorm:"primaryKey"`
	Subject string    `gorm:"column:asunto;type:text;not null"`
	Notes   string    `gorm:"column:observaciones;type:text"`
	Date    time.Time `gorm:"column:fecha;type:date"`
	Time    string    `gorm:"column:hora;type:time"`
	UserID  uint      `gorm:"column:id_usuario;not null;index"`
}

type Minute struct {
	DocumentFields
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Minute) TableName() string { return "actas" }

type Report struct {
	DocumentFields
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Report) TableName() string { return "informes" }

type Statement struct {
	DocumentFields
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Statement) TableName() string { return "reportes" }

type Commission struct {
	DocumentFields
	User User `gorm:"foreignKey:UserID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

func (Commission) TableName() string { return "comisiones" }

func (m *Minute) fields() *DocumentFields     { return &m.DocumentFields }
func (m *Minute) owner() *User                { return &m.User }
func (r *Report) fields() *DocumentFields     { return &r.DocumentFields }
func (r *Report) owner() *User                { return &r.User }
func (s *Statement) fields() *DocumentFields  { return &s.DocumentFields }
func (s *Statement) owner() *User             { return &s.User }
func (c *Commission) fields() *DocumentFields { return &c.DocumentFields }
func (c *Commission) owner() *User            { return &c.User }

// Document is a row of any kind joined with its owner's display name.
type Document struct {
	Kind      DocumentKind
	ID        uint
	Subject   string
	Notes     string
	Date      time.Time
	Time      string
	UserID    uint
	OwnerName string
}

func (d Document) DateString() string {
	if d.Date.IsZero() {
		return ""
	}
	return d.Date.Format("2006-01-02")
}

// TimeString trims fractional seconds some drivers append to TIME columns.
func (d Document) TimeString() string {
	if len(d.Time) > 8 {
		return d.Time[:8]
	}
	return d.Time
}

// DocumentTable is the storage handle for one kind.
type DocumentTable interface {
	Kind() DocumentKind
	Model() any
	Insert(tx *gorm.DB, fields DocumentFields) (uint, error)
	List(tx *gorm.DB) ([]Document, error)
	Delete(tx *gorm.DB, id uint) error
}

type documentRecord[T any] interface {
	*T
	fields() *DocumentFields
	owner() *User
}

type documentTable[T any, P documentRecord[T]] struct {
	kind DocumentKind
}

var documentTables = map[DocumentKind]DocumentTable{
	KindMinutes:     documentTable[Minute, *Minute]{kind: KindMinutes},
	KindReports:     documentTable[Report, *Report]{kind: KindReports},
	KindStatements:  documentTable[Statement, *Statement]{kind: KindStatements},
	KindCommissions: documentTable[Commission, *Commission]{kind: KindCommissions},
}

// TableFor resolves the storage handle for kind.
func TableFor(kind DocumentKind) (DocumentTable, error) {
	t, ok := documentTables[kind]
	if !ok {
		return nil, ErrUnknownDocumentKind
	}
	return t, nil
}

func (t documentTable[T, P]) Kind() DocumentKind { return t.kind }

func (t documentTable[T, P]) Model() any { return P(new(T)) }

func (t documentTable[T, P]) Insert(tx *gorm.DB, fields DocumentFields) (uint, error) {
	rec := P(new(T))
	*rec.fields() = fields
	if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
		return 0, err
	}
	return rec.fields().ID, nil
}

func (t documentTable[T, P]) List(tx *gorm.DB) ([]Document, error) {
	var recs []T
	if err := tx.Preload("User").Order("id DESC").Find(&recs).Error; err != nil {
		return nil, err
	}

	docs := make([]Document, 0, len(recs))
	for i := range recs {
		rec := P(&recs[i])
		f := rec.fields()
		docs = append(docs, Document{
			Kind:      t.kind,
			ID:        f.ID,
			Subject:   f.Subject,
			Notes:     f.Notes,
			Date:      f.Date,
			Time:      f.Time,
			UserID:    f.UserID,
			OwnerName: rec.owner().Name,
		})
	}
	return docs, nil
}

func (t documentTable[T, P]) Delete(tx *gorm.DB, id uint) error {
	return tx.Delete(P(new(T)), id).Error
}

// AllModels lists every persisted model in migration order.
func AllModels() []any {
	all := []any{&User{}}
	for _, kind := range DocumentKinds {
		all = append(all, documentTables[kind].Model())
	}
	return append(all, &PasswordReset{})
}

// DocumentReceipt describes a freshly created document. It is flashed back to
// the creator and mailed as the creation notice.
type DocumentReceipt struct {
	Kind        DocumentKind
	ID          uint
	Subject     string
	Notes       string
	Date        string
	Time        string
	CreatorName string
}
