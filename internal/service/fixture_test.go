package service

import (
	"incidentlens.io/lens/internal/pkg/logger"
	"incidentlens.io/lens/internal/store"
)

func init() {
	_ = logger.Init("error", "json")
}

var eventColumns = []string{
	store.ColEventID, store.ColDescription, store.ColTown, store.ColVillage,
	store.ColLevel, store.ColCategory, store.ColReportTime, store.ColCompletionTime,
	store.ColResolution, store.ColClusterID, store.ColSequenceTotal,
	store.ColCallerPhone, store.ColCallerID, store.ColPhoneSet,
}

// fixtureTables is a small, hand-checked dataset.
//
//	E1, E2, E3 form cluster C1 (E3 is the earliest report).
//	E4 is standalone with seven linked reports; E5 has no parseable time.
func fixtureTables() map[store.Dataset]store.Table {
	return map[store.Dataset]store.Table{
		store.EventDetails: {
			Columns: eventColumns,
			Rows: [][]string{
				{"E1", "楼上噪音扰民", "城东街道", "幸福社区", "一般", "噪音", "2025-05-02 10:00:00", "2025-05-02 12:00:00", "已调解", "C1", "3", "13800001111", "", "138****1111、139****2222"},
				{"E2", "楼上噪音再次扰民", "城东街道", "", "一般", "噪音", "2025-05-03 22:00:00", "", "", "C1", "3", "", "", "139****2222"},
				{"E3", "夜间噪音", "城东街道", "", "较大", "噪音", "2025-05-01 10:00:00", "", "", "C1", "3", "", "", " 137****3333 、138****1111"},
				{"E4", "Parking Dispute", "城西街道", "", "一般", "停车", "2025-04-20 08:00:00", "", "移交交警", "", "7", "", "110105199001011234", ""},
				{"E5", "漏水纠纷", "城西街道", "", "", "物业", "unknown", "", "", "", "1", "", "", ""},
				{"E6", "债务纠纷", "  ", "", "一般", "经济", "2025-04-25 08:00:00", "", "", "", "2", "", "", ""},
			},
		},
		store.Clusters: {
			Columns: []string{store.ColClusterID, store.ColClusterDescription, store.ColRecordCount, store.ColDurationDays, store.ColFirstReportTime, store.ColLastReportTime},
			Rows: [][]string{
				{"C1", "楼上噪音", "3", "3.5", "2025-05-01 10:00:00", "2025-05-03 22:00:00"},
				{"C2", "停车纠纷", "3", "", "2025-04-01", "2025-04-02"},
				{"C3", "邻里纠纷", "12", "40", "2025-01-01", "2025-02-10"},
				{"C4", "单条", "1", "1", "2025-03-01", "2025-03-01"},
				{"C5", "漏水", "3", "8", "2025-03-01", "2025-03-09"},
				{"C6", "空簇", "2", "1", "", ""},
			},
		},
		store.Extractions: {
			Columns: []string{store.ColExtractionEventID, store.ColExtractedInfo},
			Rows: [][]string{
				{"E1", `[{"role":"报警人","name":"张三","phone":"138****1111"},{"role":"对方","name":"李四","phone":"139****2222"}]`},
				{"E2", `[{"role":"报警人","name":"李四","phone":"139****2222"}]`},
				{"E3", `[{"role":"当事人","phone":"138****1111"}]`},
			},
		},
		store.Population: {
			Columns: []string{store.ColPersonID, store.ColNameCN, store.ColIDCardNo, store.ColMobilePhone, store.ColGender},
			Rows: [][]string{
				{"P1", "张三", "123456789012345678", "13812345678", "男"},
				{"P2", "张三丰", "110105199001011234", "13900000000", ""},
				{"P3", "李四", "123456789012345999", "13812340000", "女"},
			},
		},
		store.PhoneAnalyses: {
			Columns: []string{store.ColPhone, store.ColName, store.ColIDCard, store.ColPrimaryRole, store.ColEventCount, store.ColNameCandidates, store.ColIDCandidates, store.ColRelatedEvents},
			Rows: [][]string{
				{"139****2222", "李四", "", "对方", "2", "李四", "", `["E2", "E1", "E404"]`},
				{"138****1111", "张三", "1101**********0021", "报警人", "5", "张三;张叁", "", `['E1', 'E3']`},
				{"137****3333", "", "", "当事人", "2", "", "", `not a list`},
				{"136****4444", "王五", "", "报警人", "5", "", "", ""},
			},
		},
	}
}

func newFixtureStore() *store.Store {
	return store.New(store.NewSnapshot(fixtureTables()))
}

func newEmptyStore() *store.Store {
	return store.New(nil)
}
