package attribute

import "profile-registry/internal/model"

// Transmitter attribute types.
const (
	TypeWiFi       = 1
	TypeAirplane   = 2
	TypeMobileData = 3
)

// XmitClass handles on/off radio attributes; the param names the service.
const XmitClass = "xmit.Toggle"

// Xmit contributes the radio toggles.
type Xmit struct{}

func (Xmit) Name() string { return "xmit" }

func (Xmit) Candidates() []model.Candidate {
	return []model.Candidate{
		{Name: "Wi-Fi", Type: TypeWiFi, ImplementationClass: XmitClass, Param: "wifi"},
		{Name: "Airplane Mode", Type: TypeAirplane, ImplementationClass: XmitClass, Param: "airplane"},
		{Name: "Mobile Data", Type: TypeMobileData, ImplementationClass: XmitClass, Param: "mobiledata"},
	}
}
