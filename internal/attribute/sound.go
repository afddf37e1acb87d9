package attribute

import "profile-registry/internal/model"

// Sound attribute types.
const (
	TypeRingerMode         = 10
	TypeRingerVolume       = 11
	TypeNotificationVolume = 12
	TypeMediaVolume        = 13
	TypeAlarmVolume        = 14
	TypeVibrate            = 15
)

const (
	SoundModeClass    = "sound.Mode"
	SoundVolumeClass  = "sound.Volume"
	SoundVibrateClass = "sound.Vibrate"
)

// Sound contributes ringer mode, per-stream volumes and vibrate.
type Sound struct{}

func (Sound) Name() string { return "sound" }

func (Sound) Candidates() []model.Candidate {
	return []model.Candidate{
		{Name: "Ringer Mode", Type: TypeRingerMode, ImplementationClass: SoundModeClass, Param: "ringer"},
		{Name: "Ringer Volume", Type: TypeRingerVolume, ImplementationClass: SoundVolumeClass, Param: "ring"},
		{Name: "Notification Volume", Type: TypeNotificationVolume, ImplementationClass: SoundVolumeClass, Param: "notification"},
		{Name: "Media Volume", Type: TypeMediaVolume, ImplementationClass: SoundVolumeClass, Param: "music"},
		{Name: "Alarm Volume", Type: TypeAlarmVolume, ImplementationClass: SoundVolumeClass, Param: "alarm"},
		{Name: "Vibrate", Type: TypeVibrate, ImplementationClass: SoundVibrateClass, Param: "ringer"},
	}
}
