package entity

import "github.com/biped-mathnews/slugline-web/internal/pkg/pkgerrtext"

// DefaultCover is shown for issues without artwork of their own.
const DefaultCover = "https://i.kinja-img.com/gawker-media/image/upload/c_scale,f_auto,fl_progressive,q_80,w_1600/gynfui2kgjtnzdwlsxqy.jpg"

const (
	ListPath = "issues/"
	GetPath  = "issues/%d"
)

const CodeIssueNotFound pkgerrtext.Code = "ISSUES.NOT_FOUND"

type Issue struct {
	ID        int `json:"id"`
	VolumeNum int `json:"volume_num"`
	IssueNum  int `json:"issue_num"`
}

// Volume is a run of consecutive issues sharing a volume number.
type Volume struct {
	Number int
	Issues []Issue
}
