package ams

import "fmt"

// ADS error codes (§6 "ADS error field", §7). Grounded on the error
// table in the retrieved yatesdr-warlogix ADS client, which enumerates
// the router, device, and general ADS error ranges.
const (
	NoError uint32 = 0x0000

	ErrInternal              uint32 = 0x0001
	ErrNoRuntime             uint32 = 0x0002
	ErrAllocLockedMem        uint32 = 0x0003
	ErrInsertMailbox         uint32 = 0x0004
	ErrWrongHMsg             uint32 = 0x0005
	ErrTargetPortNotFound    uint32 = 0x0006
	ErrTargetMachineNotFound uint32 = 0x0007
	ErrUnknownCmdID          uint32 = 0x0008
	ErrBadTaskID             uint32 = 0x0009
	ErrNoIO                  uint32 = 0x000A
	ErrUnknownAmsCmd         uint32 = 0x000B
	ErrWin32Error            uint32 = 0x000C
	ErrPortNotConnected      uint32 = 0x000D
	ErrInvalidAmsLength      uint32 = 0x000E
	ErrInvalidAmsNetID       uint32 = 0x000F
	ErrLowInstLevel          uint32 = 0x0010
	ErrNoDebugInfo           uint32 = 0x0011
	ErrPortDisabled          uint32 = 0x0012
	ErrPortAlreadyConnected  uint32 = 0x0013
	ErrAmsSync               uint32 = 0x0014
	ErrAmsSyncSendError      uint32 = 0x0015
	ErrAmsNoSync             uint32 = 0x0016
	ErrNoIndexMap            uint32 = 0x0017
	ErrInvalidAmsPort        uint32 = 0x0018
	ErrNoMemory              uint32 = 0x0019
	ErrTCPSend               uint32 = 0x001A
	ErrHostUnreachable       uint32 = 0x001B
	ErrInvalidAmsFragment    uint32 = 0x001C
	ErrTLSSend               uint32 = 0x001D
	ErrAccessDenied          uint32 = 0x001E

	ErrRouterNoLockedMem      uint32 = 0x0500
	ErrRouterResizeMem        uint32 = 0x0501
	ErrRouterMailboxFull      uint32 = 0x0502
	ErrRouterDebugboxFull     uint32 = 0x0503
	ErrRouterUnknownPortType  uint32 = 0x0504
	ErrRouterNotInitialized   uint32 = 0x0505
	ErrRouterPortRemoved      uint32 = 0x0506
	ErrRouterPortNotOpen      uint32 = 0x0507
	ErrRouterPortOpen         uint32 = 0x0508
	ErrRouterPortConnected    uint32 = 0x0509
	ErrRouterPortNotConnected uint32 = 0x050A
	ErrRouterNoSendQueue      uint32 = 0x050B

	ErrDeviceError               uint32 = 0x0700
	ErrDeviceSrvNotSupp          uint32 = 0x0701
	ErrDeviceInvalidGrp          uint32 = 0x0702
	ErrDeviceInvalidOffs         uint32 = 0x0703
	ErrDeviceInvalidAccess       uint32 = 0x0704
	ErrDeviceInvalidSize         uint32 = 0x0705
	ErrDeviceInvalidData         uint32 = 0x0706
	ErrDeviceNotReady            uint32 = 0x0707
	ErrDeviceBusy                uint32 = 0x0708
	ErrDeviceInvalidContext      uint32 = 0x0709
	ErrDeviceNoMemory            uint32 = 0x070A
	ErrDeviceInvalidParam        uint32 = 0x070B
	ErrDeviceNotFound            uint32 = 0x070C
	ErrDeviceSyntax              uint32 = 0x070D
	ErrDeviceIncompatible        uint32 = 0x070E
	ErrDeviceExists              uint32 = 0x070F
	ErrDeviceSymbolNotFound      uint32 = 0x0710
	ErrDeviceSymbolVersionInvalid uint32 = 0x0711
	ErrDeviceInvalidState        uint32 = 0x0712
	ErrDeviceTransModeNotSupp    uint32 = 0x0713
	ErrDeviceNotifyHndInvalid    uint32 = 0x0714
	ErrDeviceClientUnknown       uint32 = 0x0715
	ErrDeviceNoMoreHdls          uint32 = 0x0716
	ErrDeviceInvalidWatchSize    uint32 = 0x0717
	ErrDeviceNotInit             uint32 = 0x0718
	ErrDeviceTimeout             uint32 = 0x0719
	ErrDeviceNoInterface         uint32 = 0x071A
	ErrDeviceInvalidInterface    uint32 = 0x071B
	ErrDeviceInvalidClsID        uint32 = 0x071C
	ErrDeviceInvalidObjID        uint32 = 0x071D
	ErrDevicePending             uint32 = 0x071E
	ErrDeviceAborted             uint32 = 0x071F
	ErrDeviceWarning             uint32 = 0x0720
	ErrDeviceInvalidArrayIdx     uint32 = 0x0721
	ErrDeviceSymbolNotActive     uint32 = 0x0722
	ErrDeviceAccessDenied        uint32 = 0x0723
)

// AdsError is a non-zero ADS result code returned in a response payload
// or header (§7 "Protocol" row). Distinct from a Go transport error: the
// frame decoded successfully, but the controller rejected the command.
type AdsError struct {
	Code uint32
}

func (e *AdsError) Error() string {
	return fmt.Sprintf("ads: error 0x%04X: %s", e.Code, adsErrorName(e.Code))
}

func adsErrorName(code uint32) string {
	switch code {
	case NoError:
		return "no error"
	case ErrTargetPortNotFound:
		return "target port not found"
	case ErrTargetMachineNotFound:
		return "target machine not found"
	case ErrPortNotConnected:
		return "port not connected"
	case ErrDeviceSymbolNotFound:
		return "symbol not found"
	case ErrDeviceInvalidSize:
		return "invalid size"
	case ErrDeviceInvalidData:
		return "invalid data"
	case ErrDeviceNotifyHndInvalid:
		return "invalid notification handle"
	case ErrDeviceNoMoreHdls:
		return "no more handles"
	case ErrDeviceTimeout:
		return "device timeout"
	case ErrDeviceAccessDenied, ErrAccessDenied:
		return "access denied"
	default:
		return "unknown ADS error"
	}
}
