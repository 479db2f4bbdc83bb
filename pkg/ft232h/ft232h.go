// Package ft232h adapts an FT232H USB bridge to the RHD2164 word-exchange
// transport contract.
package ft232h

import (
	"fmt"

	"github.com/yunginnanet/ft232h"
)

// DeviceInfo is a read-only snapshot of the FT232H device identity.
type DeviceInfo struct {
	Index       int
	Serial      string
	Description string
	ProductID   string
	VendorID    string
	IsOpen      bool
	IsHighSpeed bool
}

func (ft DeviceInfo) String() string {
	return fmt.Sprintf(
		"DeviceInfo{Index:%d, Serial:%s, Description:%s, ProductID:%s, VendorID:%s, IsOpen:%t, IsHighSpeed:%t}",
		ft.Index, ft.Serial, ft.Description, ft.ProductID, ft.VendorID, ft.IsOpen, ft.IsHighSpeed,
	)
}

// FT232H wraps an open FT232H device together with the chip-select pin
// used to frame each exchange.
type FT232H struct {
	*ft232h.FT232H
	csPin ft232h.CPin
	info  DeviceInfo
}

// Info returns a snapshot of the device information. Read-only.
func (ft *FT232H) Info() DeviceInfo {
	vid, pid := ft.vidPid()
	return DeviceInfo{
		Index:       ft.Index(),
		Serial:      ft.Serial(),
		Description: ft.Desc(),
		ProductID:   pid,
		VendorID:    vid,
		IsOpen:      ft.IsOpen(),
		IsHighSpeed: ft.IsHiSpeed(),
	}
}

func (ft *FT232H) String() string {
	return fmt.Sprintf("FT232H[%s:%s]: %s", ft.Info().VendorID, ft.Info().ProductID, ft.Desc())
}

// Connect opens an FT232H device. With no descriptor, the first device
// found is used; with one, the device matching it.
func Connect(choice ...Descriptor) (ft *FT232H, err error) {
	ft = &FT232H{}

	switch len(choice) {
	case 0:
		ft.FT232H, err = ft232h.New()
		return ft, err
	case 1:
		desc := choice[0]
		if err = desc.Validate(); err != nil {
			return nil, ErrBadDescriptor
		}
		ft.FT232H, err = ft232h.OpenMask(desc.Mask())
		if err != nil {
			return nil, err
		}
		ft.info = ft.Info()
		return ft, nil
	default:
		return nil, fmt.Errorf("invalid number of arguments")
	}
}
