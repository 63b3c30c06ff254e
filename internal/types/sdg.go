// Package types provides type definitions for structured data used throughout the esg-compass system.
//
//nolint:revive // types is a standard Go package name pattern
package types

import "fmt"

// GoalCount is the number of UN Sustainable Development Goals.
const GoalCount = 17

// SDG describes one of the 17 fixed sustainability goals.
type SDG struct {
	ID    int    `json:"id"`
	Code  string `json:"code"`
	Title string `json:"title"`
	Color string `json:"color"`
}

// SDGList is the fixed catalog of the 17 goals, in id order.
// Titles are the Korean labels shown in the survey UI.
var SDGList = []SDG{
	{ID: 1, Code: "G01", Title: "빈곤 종식", Color: "#E5243B"},
	{ID: 2, Code: "G02", Title: "기아 종식", Color: "#DDA63A"},
	{ID: 3, Code: "G03", Title: "건강과 웰빙", Color: "#4C9F38"},
	{ID: 4, Code: "G04", Title: "양질의 교육", Color: "#C5192D"},
	{ID: 5, Code: "G05", Title: "성평등", Color: "#FF3A21"},
	{ID: 6, Code: "G06", Title: "깨끗한 물과 위생", Color: "#26BDE2"},
	{ID: 7, Code: "G07", Title: "깨끗한 에너지", Color: "#FCC30B"},
	{ID: 8, Code: "G08", Title: "좋은 일자리와 경제 성장", Color: "#A21942"},
	{ID: 9, Code: "G09", Title: "산업, 혁신, 사회기반시설", Color: "#FD6925"},
	{ID: 10, Code: "G10", Title: "불평등 감소", Color: "#DD1367"},
	{ID: 11, Code: "G11", Title: "지속가능한 도시와 공동체", Color: "#FD9D24"},
	{ID: 12, Code: "G12", Title: "책임감 있는 소비와 생산", Color: "#BF8B2E"},
	{ID: 13, Code: "G13", Title: "기후변화 대응", Color: "#3F7E44"},
	{ID: 14, Code: "G14", Title: "해양 생태계 보존", Color: "#0A97D9"},
	{ID: 15, Code: "G15", Title: "육상 생태계 보존", Color: "#56C02B"},
	{ID: 16, Code: "G16", Title: "평화, 정의, 제도", Color: "#00689D"},
	{ID: 17, Code: "G17", Title: "지구촌 협력", Color: "#19486A"},
}

// GoalCode returns the Gnn code for a goal id (1..17).
func GoalCode(id int) string {
	return fmt.Sprintf("G%02d", id)
}

// GoalByID looks up a goal in the catalog by id.
func GoalByID(id int) (SDG, bool) {
	if id < 1 || id > GoalCount {
		return SDG{}, false
	}
	return SDGList[id-1], true
}

// GoalByCode looks up a goal in the catalog by its Gnn code.
func GoalByCode(code string) (SDG, bool) {
	for _, g := range SDGList {
		if g.Code == code {
			return g, true
		}
	}
	return SDG{}, false
}
