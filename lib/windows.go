//go:build windows
// +build windows

package multiwalllib

import (
	"fmt"
	"os"
	"path/filepath"
	"syscall"
	"unsafe"

	ole "github.com/go-ole/go-ole"
	"go.uber.org/zap"
	"golang.org/x/sys/windows/registry"
)

type rect struct {
	left   int32
	top    int32
	right  int32
	bottom int32
}

// DesktopWallpaper does not extend IDispatch so this needs to be done manually
type IDesktopWallpaperVtbl struct {
	QueryInterface            uintptr
	AddRef                    uintptr
	Release                   uintptr
	SetWallpaper              uintptr
	GetWallpaper              uintptr
	GetMonitorDevicePathAt    uintptr
	GetMonitorDevicePathCount uintptr
	GetMonitorRECT            uintptr
	SetBackgroundColor        uintptr
	GetBackgroundColor        uintptr
	SetPosition               uintptr
	GetPosition               uintptr
	SetSlideshow              uintptr
	GetSlideshow              uintptr
	SetSlideshowOptions       uintptr
	GetSlideshowOptions       uintptr
	AdvanceSlideshow          uintptr
	GetStatus                 uintptr
	Enable                    uintptr
}

// Pulled from headers
const CLSID = "{C2CF3110-460E-4fc1-B9D0-8A1C0C9CC4BD}"
const IID = "{B92B56A9-8B55-4E14-9A89-0199BBB6F93B}"
const DWPOS_SPAN = uintptr(5)

// Monitor is counted but isn't attached to the computer
const S_FALSE = uintptr(2147500037)

var modole32 = syscall.NewLazyDLL("ole32.dll")
var coTaskMemFree = modole32.NewProc("CoTaskMemFree")

func withDesktopWallpaper(f func(*ole.IUnknown, *IDesktopWallpaperVtbl) error) error {
	err := ole.CoInitialize(0)
	if err != nil {
		return err
	}
	defer ole.CoUninitialize()

	desktop, err := ole.CreateInstance(
		ole.NewGUID(CLSID),
		ole.NewGUID(IID))
	if err != nil {
		return err
	}
	defer desktop.Release()

	return f(desktop, (*IDesktopWallpaperVtbl)(unsafe.Pointer(desktop.RawVTable)))
}

// GetMonitors lists attached monitors in virtual screen coordinates.
func GetMonitors() ([]MonitorRect, error) {
	var monitors []MonitorRect

	err := withDesktopWallpaper(func(desktop *ole.IUnknown, vtable *IDesktopWallpaperVtbl) error {
		var count uint32

		hr, _, err := syscall.Syscall(
			vtable.GetMonitorDevicePathCount,
			2,
			uintptr(unsafe.Pointer(desktop)),
			uintptr(unsafe.Pointer(&count)),
			0)
		if hr != 0 {
			return fmt.Errorf(
				"Unexpected value from GetMonitorDevicePathCount %d %v", hr, err)
		}

		for i := uint32(0); i < count; i++ {
			var pathOut *[1 << 30]uint16

			hr, _, err = syscall.Syscall(
				vtable.GetMonitorDevicePathAt,
				3,
				uintptr(unsafe.Pointer(desktop)),
				uintptr(i),
				uintptr(unsafe.Pointer(&pathOut)))
			if hr != 0 {
				return fmt.Errorf(
					"Unexpected value from GetMonitorDevicePathAt %d %v", hr, err)
			}

			m := rect{}
			rectHR, _, errno := syscall.Syscall(
				vtable.GetMonitorRECT,
				3,
				uintptr(unsafe.Pointer(desktop)),
				uintptr(unsafe.Pointer(pathOut)),
				uintptr(unsafe.Pointer(&m)))

			// Free memory allocated outside of Go's control before checking rectHR
			_, _, ferr := syscall.Syscall(
				coTaskMemFree.Addr(),
				1,
				uintptr(unsafe.Pointer(pathOut)),
				0,
				0)
			if ferr != 0 {
				return fmt.Errorf("Unexpected value from CoTaskMemFree %v", ferr)
			}

			if (rectHR != 0 && rectHR != S_FALSE) || errno != 0 {
				return fmt.Errorf(
					"Unexpected value from GetMonitorRECT %d %v", rectHR, errno)
			}
			if rectHR == S_FALSE {
				continue
			}

			monitors = append(monitors, MonitorRect{
				X:      int(m.left),
				Y:      int(m.top),
				Width:  int(m.right - m.left),
				Height: int(m.bottom - m.top),
			})
		}
		return nil
	})

	return monitors, err
}

func setRegistryKeys() error {
	k, err := registry.OpenKey(registry.CURRENT_USER, `Control Panel\Desktop`, registry.SET_VALUE)
	if err != nil {
		return err
	}
	defer k.Close()

	// 22 is "Span"
	if err = k.SetStringValue("WallpaperStyle", "22"); err != nil {
		return err
	}
	if err = k.SetStringValue("TileWallpaper", "0"); err != nil {
		return err
	}

	return k.SetDWordValue("JPEGImportQuality", 100)
}

func setSpannedWallpaper(path string) error {
	return withDesktopWallpaper(func(desktop *ole.IUnknown, vtable *IDesktopWallpaperVtbl) error {
		hr, _, _ := syscall.Syscall(
			vtable.SetPosition,
			2,
			uintptr(unsafe.Pointer(desktop)),
			DWPOS_SPAN,
			0)
		if hr != 0 {
			return fmt.Errorf("Unexpected value from SetPosition %d", hr)
		}

		// A null monitor ID applies to every monitor
		hr, _, _ = syscall.Syscall(
			vtable.SetWallpaper,
			3,
			uintptr(unsafe.Pointer(desktop)),
			0,
			uintptr(unsafe.Pointer(syscall.StringToUTF16Ptr(path))))
		if hr != 0 {
			return fmt.Errorf("Unexpected value from SetWallpaper %d", hr)
		}
		return nil
	})
}

// ApplyWallpaper spans the image at path across every monitor. There is no
// manual fallback script on Windows.
func ApplyWallpaper(path string, log *zap.Logger) ApplyResult {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ApplyResult{Message: err.Error()}
	}
	if _, err = os.Stat(abs); err != nil {
		return ApplyResult{Message: fmt.Sprintf("Wallpaper [%s] does not exist", abs)}
	}

	if err = setRegistryKeys(); err != nil {
		log.Warn("Could not set registry keys", zap.Error(err))
	}

	if err = setSpannedWallpaper(abs); err != nil {
		log.Warn("Could not apply wallpaper", zap.Error(err))
		return ApplyResult{Message: fmt.Sprintf(
			"%s\nSelect [%s] with the Span option in the Personalization settings",
			err, abs)}
	}
	return ApplyResult{OK: true, Message: "Wallpaper applied"}
}

const ATTACH_PARENT_PROCESS = uintptr(^uint32(0)) // (DWORD)-1

var modkernel32 = syscall.NewLazyDLL("kernel32.dll")
var procAttachConsole = modkernel32.NewProc("AttachConsole")

// Attempts to attach to the parent console if one exists so we can get stdout
// Note that it's impossible to properly redirect stdin
// See https://stackoverflow.com/questions/23743217/
func AttachParentConsole() {
	r, _, _ :=
		syscall.Syscall(procAttachConsole.Addr(), 1, ATTACH_PARENT_PROCESS, 0, 0)

	if r == 0 {
		return
	}

	hout, err := syscall.GetStdHandle(syscall.STD_OUTPUT_HANDLE)
	if err != nil {
		return
	}
	herr, err := syscall.GetStdHandle(syscall.STD_ERROR_HANDLE)
	if err != nil {
		return
	}

	os.Stdout = os.NewFile(uintptr(hout), "/dev/stdout")
	os.Stderr = os.NewFile(uintptr(herr), "/dev/stderr")
}
