package probe

const (
	Unknown = "Unknown"
	// SecureStorageSentinel is reported for the StrongBox state, which is not
	// readable over the debug bridge.
	SecureStorageSentinel = "Requires elevated access"
)

// System properties read by the probe.
const (
	PropFlashLocked       = "ro.boot.flash.locked"
	PropVerifiedBootState = "ro.boot.verifiedbootstate"
	PropHardwareRevision  = "ro.boot.hardware.revision"
	PropVerityMode        = "ro.boot.veritymode"
)

// Attributes is the security posture of one device.
type Attributes struct {
	Serial                string `json:"serial"`
	BootloaderLocked      bool   `json:"bootloader_locked"`
	VerifiedBootState     string `json:"verified_boot_state"`
	SecureElementFirmware string `json:"secure_element_firmware"`
	VerityMode            string `json:"verity_mode"`
	SecureStorage         string `json:"secure_storage"`
}

// Defaults holds the value each attribute takes when its query fails. Every
// fallback leans toward "locked" or "Unknown" so a failed read never makes a
// device look less protected than it is.
var Defaults = Attributes{
	BootloaderLocked:      true,
	VerifiedBootState:     Unknown,
	SecureElementFirmware: Unknown,
	VerityMode:            Unknown,
	SecureStorage:         SecureStorageSentinel,
}
