//go:build webkit_cgo

package webkitgtk

import (
	webkit "github.com/diamondburned/gotk4-webkitgtk/pkg/webkit/v6"
	"github.com/ubytes/appplatform/pkg/platform/driver"
)

// prompt adapts a WebKit permission request. WebKitGTK has no "default"
// answer and no profile storage, so default is sent as deny and the save
// flag is left to the application.
type prompt struct {
	request webkit.PermissionRequester
	kind    driver.PermissionKind
	url     string
}

func newPrompt(request webkit.PermissionRequester, url string) *prompt {
	return &prompt{request: request, kind: permissionKind(request), url: url}
}

func permissionKind(request webkit.PermissionRequester) driver.PermissionKind {
	switch r := request.(type) {
	case *webkit.UserMediaPermissionRequest:
		if webkit.UserMediaPermissionIsForVideoDevice(r) {
			return driver.PermissionCamera
		}
		if webkit.UserMediaPermissionIsForAudioDevice(r) {
			return driver.PermissionMicrophone
		}
	case *webkit.GeolocationPermissionRequest:
		return driver.PermissionGeolocation
	case *webkit.NotificationPermissionRequest:
		return driver.PermissionNotifications
	case *webkit.ClipboardPermissionRequest:
		return driver.PermissionClipboardRead
	}
	return driver.PermissionUnknown
}

func (p *prompt) Kind() driver.PermissionKind { return p.kind }
func (p *prompt) URL() string                 { return p.url }

// UserInitiated is not exposed by WebKitGTK.
func (p *prompt) UserInitiated() bool { return false }

func (p *prompt) Complete(response driver.PermissionResponse, _ bool) {
	if response == driver.ResponseAllow {
		p.request.Allow()
		return
	}
	p.request.Deny()
}
