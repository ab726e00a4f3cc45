package document

import (
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/props"
)

var (
	headerShade  = props.Color{Red: 224, Green: 224, Blue: 224}
	sectionShade = props.Color{Red: 240, Green: 240, Blue: 240}
	zebraShade   = props.Color{Red: 247, Green: 247, Blue: 247}
	borderColor  = props.Color{Red: 0, Green: 0, Blue: 0}
)

func framedCell(thickness float64) *props.Cell {
	return &props.Cell{
		BorderType:      border.Full,
		BorderColor:     &borderColor,
		BorderThickness: thickness,
	}
}

func shadedCell(shade props.Color, thickness float64) *props.Cell {
	c := framedCell(thickness)
	c.BackgroundColor = &shade
	return c
}

func zebraCell(thickness float64) *props.Cell {
	c := framedCell(thickness)
	c.BackgroundColor = &zebraShade
	return c
}
