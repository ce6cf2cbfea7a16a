package preview

import (
	"fmt"
	"image"
	"image/color"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nfnt/resize"
)

// DisabledColor fills placeholders for monitors that are off.
const DisabledColor = "#3a3a3a"

// Cells renders img into a rows x cols grid of terminal cells. Each cell
// holds two vertical pixels drawn with an upper half block.
func Cells(img image.Image, cols, rows int) [][]string {
	if img == nil || cols <= 0 || rows <= 0 {
		return nil
	}
	small := resize.Resize(uint(cols), uint(rows*2), img, resize.Bilinear)
	b := small.Bounds()

	grid := make([][]string, rows)
	for row := 0; row < rows; row++ {
		grid[row] = make([]string, cols)
		for col := 0; col < cols; col++ {
			top := hexColor(small.At(b.Min.X+col, b.Min.Y+row*2))
			bottom := hexColor(small.At(b.Min.X+col, b.Min.Y+row*2+1))
			grid[row][col] = lipgloss.NewStyle().
				Foreground(lipgloss.Color(top)).
				Background(lipgloss.Color(bottom)).
				Render("▀")
		}
	}
	return grid
}

// Thumbnail is Cells joined into lines.
func Thumbnail(img image.Image, cols, rows int) []string {
	grid := Cells(img, cols, rows)
	if grid == nil {
		return nil
	}
	lines := make([]string, len(grid))
	for i, row := range grid {
		lines[i] = strings.Join(row, "")
	}
	return lines
}

// FillCell is a single solid cell.
func FillCell(color string) string {
	return lipgloss.NewStyle().Background(lipgloss.Color(color)).Render(" ")
}

func hexColor(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", r>>8, g>>8, b>>8)
}
