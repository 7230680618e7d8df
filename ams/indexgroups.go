package ams

// ADS index groups used by the symbol/handle/sumup operations this
// client speaks (§6, §4.6). Grounded on the comments in the teacher's
// symbol.go/session.go ("ADSIGRP_..." annotations) and cross-checked
// against the retrieved yatesdr-warlogix ads-protocol.go index-group
// table.
const (
	IdxSymbolTable            uint32 = 0xF000
	IdxSymbolName             uint32 = 0xF001
	IdxSymbolValue            uint32 = 0xF002
	IdxGetSymHandleByName     uint32 = 0xF003
	IdxReadWriteSymValueByHandle uint32 = 0xF005
	IdxReleaseSymHandle       uint32 = 0xF006
	IdxSymbolVersion          uint32 = 0xF008
	IdxSymbolInfoByNameEx     uint32 = 0xF009
	IdxSymbolUpload           uint32 = 0xF00B
	IdxSymbolUploadInfo       uint32 = 0xF00C
	IdxDataTypeUpload         uint32 = 0xF00E
	IdxSymbolUploadInfo2      uint32 = 0xF00F

	// Sumup ("sum-up") commands batch several sub-requests into one
	// ReadWrite frame (GLOSSARY "Sumup"). The protocol offers no sumup
	// for handle lookups (§4.4), only for reads and writes by handle.
	IdxSumupRead  uint32 = 0xF080
	IdxSumupWrite uint32 = 0xF081
)
