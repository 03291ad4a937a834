package swipeview

import (
	"testing"

	"github.com/gdamore/tcell/v3"
	"github.com/stretchr/testify/assert"
)

func TestBlitTranslatesAndClips(t *testing.T) {
	src := newCaptureScreen(4, 2)
	src.reset(4, 2)
	src.PutStr(0, 0, "abcd")
	src.PutStr(0, 1, "efgh")

	dst := newCaptureScreen(6, 2)
	dst.reset(6, 2)
	src.frame.blit(dst, blitOptions{dx: 3, dy: 1, clipX: 0, clipY: 0, clipWidth: 5, clipHeight: 2})

	assert.Equal(t, "      ", dst.line(0))
	assert.Equal(t, "   ab ", dst.line(1))
}

func TestBlitBlanksCutWideGraphemes(t *testing.T) {
	src := newCaptureScreen(5, 1)
	src.reset(5, 1)
	src.PutStr(0, 0, "世a世")

	dst := newCaptureScreen(4, 1)
	dst.reset(4, 1)
	src.frame.blit(dst, blitOptions{dx: -1, clipWidth: 4, clipHeight: 1})
	assert.Equal(t, " a世", dst.line(0), "a cut lead becomes a blank")

	dst.reset(4, 1)
	src.frame.blit(dst, blitOptions{clipWidth: 4, clipHeight: 1})
	assert.Equal(t, "世a ", dst.line(0), "a cut tail becomes a blank")
}

func TestBlitShade(t *testing.T) {
	src := newCaptureScreen(2, 1)
	src.reset(2, 1)
	src.PutStr(0, 0, "ab")

	dst := newCaptureScreen(2, 1)
	dst.reset(2, 1)
	src.frame.blit(dst, blitOptions{
		clipWidth: 2, clipHeight: 1,
		shade: func(s tcell.Style) tcell.Style { return s.Dim(true) },
	})

	_, style, _ := dst.Get(1, 0)
	assert.True(t, style.HasDim())
}

func TestCaptureScreenResetForgetsCells(t *testing.T) {
	s := newCaptureScreen(3, 1)
	s.reset(3, 1)
	s.PutStr(0, 0, "abc")
	s.reset(3, 1)

	assert.Equal(t, "   ", s.line(0))
	s.reset(5, 1)
	assert.Equal(t, "     ", s.line(0))
}
