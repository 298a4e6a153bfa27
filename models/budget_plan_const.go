package models

type BPStatus string

const (
	BPStatusDraft    BPStatus = "DRAFT"
	BPStatusPending  BPStatus = "PENDING_APPROVAL"
	BPStatusApproved BPStatus = "APPROVED"
	BPStatusRejected BPStatus = "REJECTED"
	BPStatusReturned BPStatus = "RETURNED_FOR_REVISION"
	BPStatusClosed   BPStatus = "CLOSED"
)

var bpStatusHumanName = map[BPStatus]string{
	BPStatusDraft:    "Черновик",
	BPStatusPending:  "На согласовании",
	BPStatusApproved: "Согласован",
	BPStatusRejected: "Отклонен",
	BPStatusReturned: "Возвращен на доработку",
	BPStatusClosed:   "Закрыт",
}

func (s BPStatus) ToHuman() string {
	if human, exist := bpStatusHumanName[s]; exist {
		return human
	}
	return string(s)
}

// терминальные статусы, действия по плану больше недоступны
func (s BPStatus) IsTerminal() bool {
	return s == BPStatusApproved || s == BPStatusRejected || s == BPStatusClosed
}

// план ожидает решения на одном из уровней согласования
func (s BPStatus) IsActionable() bool {
	return s == BPStatusPending
}

func (s BPStatus) AllowSubmit() bool {
	return s == BPStatusDraft || s == BPStatusReturned
}

func (s BPStatus) AllowEdit() bool {
	return s == BPStatusDraft || s == BPStatusReturned
}

type ApprovalActionType string

const (
	AActionApprove         ApprovalActionType = "APPROVE"
	AActionReject          ApprovalActionType = "REJECT"
	AActionRequestRevision ApprovalActionType = "REQUEST_REVISION"
)

var aActionHumanName = map[ApprovalActionType]string{
	AActionApprove:         "Согласовано",
	AActionReject:          "Отклонено",
	AActionRequestRevision: "Возвращено на доработку",
}

func (a ApprovalActionType) ToHuman() string {
	if human, exist := aActionHumanName[a]; exist {
		return human
	}
	return string(a)
}

func (a ApprovalActionType) IsValid() bool {
	switch a {
	case AActionApprove, AActionReject, AActionRequestRevision:
		return true
	}
	return false
}

const (
	// подставляется, если согласующий не указал причину отклонения
	DefaultRejectionReason = "Причина не указана"
	// подставляется, если согласующий не указал комментарий при возврате на доработку
	DefaultRevisionComment = "Комментарий не указан"
)
