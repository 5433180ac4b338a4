package types

// EntityRef is either a raw, device coded id as it sits in a record, or an id
// that has been resolved against the table's device code.
type EntityRef interface {
	entityRef()
}

// RawRef is an id word straight from a data record: id*10 + device code.
type RawRef int32

// ResolvedRef is a model id with the device code that was stripped from it.
type ResolvedRef struct {
	ID     int
	Device int
}

func (RawRef) entityRef()      {}
func (ResolvedRef) entityRef() {}

// DeviceID strips the device code from a raw id.
func DeviceID(raw int32, device int) int {
	return (int(raw) - device) / 10
}

// Resolve turns any reference into a resolved one.
func Resolve(ref EntityRef, device int) ResolvedRef {
	switch r := ref.(type) {
	case ResolvedRef:
		return r
	case RawRef:
		return ResolvedRef{ID: DeviceID(int32(r), device), Device: device}
	}
	return ResolvedRef{}
}
