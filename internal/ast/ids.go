package ast

type (
	// top-level entities
	FileID ID
	ItemID ID
	NodeID ID
	ExprID ID
	AttrID ID
	// payload handles
	PayloadID ID
)

// ID is the raw arena index type behind every typed ID.
type ID = uint32

const (
	NoFileID    FileID    = 0
	NoItemID    ItemID    = 0
	NoNodeID    NodeID    = 0
	NoExprID    ExprID    = 0
	NoAttrID    AttrID    = 0
	NoPayloadID PayloadID = 0
)

func (id FileID) IsValid() bool    { return id != NoFileID }
func (id ItemID) IsValid() bool    { return id != NoItemID }
func (id NodeID) IsValid() bool    { return id != NoNodeID }
func (id ExprID) IsValid() bool    { return id != NoExprID }
func (id AttrID) IsValid() bool    { return id != NoAttrID }
func (id PayloadID) IsValid() bool { return id != NoPayloadID }
