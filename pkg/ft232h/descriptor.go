package ft232h

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/yunginnanet/ft232h"
)

// Descriptor uniquely identifies an FT232H device for connection.
type Descriptor struct {
	Index  int
	Serial string
	mask   *ft232h.Mask
}

// ErrBadDescriptor flags a descriptor that matches nothing.
var ErrBadDescriptor = errors.New("invalid FT232H descriptor provided")

func emptyMask(mask *ft232h.Mask) bool {
	return mask == nil || (mask.Serial == "" && mask.PID == "" && mask.VID == "" && mask.Desc == "" && mask.Index == "")
}

// Validate checks that the Descriptor can select a device.
func (ftd Descriptor) Validate() error {
	if ftd.Index < 0 && ftd.Serial == "" && emptyMask(ftd.mask) {
		return ErrBadDescriptor
	}
	return nil
}

// Mask returns the [ft232h.Mask] representation of the Descriptor.
func (ftd Descriptor) Mask() *ft232h.Mask {
	if ftd.mask == nil {
		ftd.mask = new(ft232h.Mask)
	}
	if ftd.Serial != "" {
		ftd.mask.Serial = ftd.Serial
	}
	if ftd.Index >= 0 {
		ftd.mask.Index = strconv.Itoa(ftd.Index)
	}
	return ftd.mask
}

func (ftd Descriptor) String() string {
	return fmt.Sprintf("Descriptor{Index:%d, Serial:%s, mask:%v}", ftd.Index, ftd.Serial, ftd.mask)
}

// ByIndex selects the device at the given enumeration index.
func ByIndex(index int) Descriptor {
	return Descriptor{Index: index}
}

// BySerial selects the device with the given serial number.
func BySerial(serial string) Descriptor {
	return Descriptor{Serial: serial, Index: -1}
}

// ByMask selects the device matching an arbitrary mask.
func ByMask(mask *ft232h.Mask) Descriptor {
	return Descriptor{mask: mask, Index: -1}
}
