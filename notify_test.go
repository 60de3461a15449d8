package qrcode

import (
	"bytes"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func TestToastReplacesAndDismisses(t *testing.T) {
	color.NoColor = true

	var out bytes.Buffer

	toast := NewToast(&out, 50*time.Millisecond)

	_, visible := toast.Visible()
	assert.False(t, visible)

	toast.Notify("first")
	toast.Notify("second")

	text, visible := toast.Visible()
	assert.True(t, visible)
	assert.Equal(t, "second", text)

	assert.Eventually(t, func() bool {
		_, visible := toast.Visible()
		return !visible
	}, time.Second, 5*time.Millisecond)

	assert.Contains(t, out.String(), "first")
	assert.Contains(t, out.String(), "second")
}

func TestToastDefaultDuration(t *testing.T) {
	toast := NewToast(nil, 0)

	assert.Equal(t, NotifyDuration, toast.duration)

	toast.Notify("quiet")

	text, visible := toast.Visible()
	assert.True(t, visible)
	assert.Equal(t, "quiet", text)
}
