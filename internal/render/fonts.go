package render

import (
	"os"
	"path/filepath"

	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core/entity"
	"github.com/johnfercher/maroto/v2/pkg/repository"
)

// loadFonts loads a UTF-8 TTF family from dir, expecting files named
// <Family>-Regular.ttf and so on. Styles without their own file reuse the
// regular face. Returns nil when the regular face is missing so the caller
// can fall back to the built-in fonts.
func loadFonts(dir, family string) ([]*entity.CustomFont, error) {
	if dir == "" || family == "" {
		return nil, nil
	}

	regular := filepath.Join(dir, family+"-Regular.ttf")
	if _, err := os.Stat(regular); err != nil {
		return nil, nil
	}

	styles := map[fontstyle.Type]string{
		fontstyle.Normal:     regular,
		fontstyle.Bold:       filepath.Join(dir, family+"-Bold.ttf"),
		fontstyle.Italic:     filepath.Join(dir, family+"-Italic.ttf"),
		fontstyle.BoldItalic: filepath.Join(dir, family+"-BoldItalic.ttf"),
	}

	builder := repository.New()
	for style, path := range styles {
		if _, err := os.Stat(path); err != nil {
			path = regular
		}
		builder = builder.AddUTF8Font(family, style, path)
	}

	return builder.Load()
}
