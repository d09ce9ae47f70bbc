package seed

import "committee-tracker/backend/internal/models"

type seedCommittee struct {
	title    string
	appendix string
	tasks    []string
}

var committees = []seedCommittee{
	{"คณะกรรมการอำนวยการ", "ภาคผนวก ก", []string{
		"ประชุมกำหนดแนวทางการดำเนินงาน",
		"แต่งตั้งคณะกรรมการฝ่ายต่าง ๆ",
		"ติดตามความคืบหน้าของทุกฝ่าย",
	}},
	{"คณะกรรมการฝ่ายสถานที่", "ภาคผนวก ข", []string{
		"สำรวจและจองสถานที่จัดงาน",
		"จัดผังที่นั่งและเวที",
		"ตกแต่งสถานที่",
		"เก็บและคืนสภาพสถานที่หลังงาน",
	}},
	{"คณะกรรมการฝ่ายลงทะเบียน", "ภาคผนวก ค", []string{
		"จัดทำแบบฟอร์มลงทะเบียน",
		"เตรียมป้ายชื่อผู้เข้าร่วม",
		"สรุปจำนวนผู้เข้าร่วมงาน",
	}},
	{"คณะกรรมการฝ่ายประชาสัมพันธ์", "ภาคผนวก ง", []string{
		"ออกแบบโปสเตอร์และสื่อออนไลน์",
		"เผยแพร่ข่าวสารผ่านช่องทางต่าง ๆ",
		"ถ่ายภาพและวิดีโอระหว่างงาน",
	}},
	{"คณะกรรมการฝ่ายการเงินและพัสดุ", "ภาคผนวก จ", []string{
		"จัดทำประมาณการงบประมาณ",
		"จัดซื้อจัดจ้างตามระเบียบ",
		"สรุปรายงานการใช้จ่าย",
	}},
	{"คณะกรรมการฝ่ายพิธีการ", "ภาคผนวก ฉ", []string{
		"จัดทำกำหนดการพิธีเปิด-ปิด",
		"เตรียมพิธีกรและบทพูด",
		"ซักซ้อมลำดับพิธีการ",
	}},
	{"คณะกรรมการฝ่ายอาหารและเครื่องดื่ม", "ภาคผนวก ช", []string{
		"สำรวจจำนวนผู้รับประทานอาหาร",
		"ติดต่อผู้ให้บริการอาหาร",
		"จัดจุดบริการเครื่องดื่ม",
	}},
	{"คณะกรรมการฝ่ายโสตทัศนูปกรณ์", "ภาคผนวก ซ", []string{
		"ตรวจสอบเครื่องเสียงและไมโครโฟน",
		"เตรียมโปรเจกเตอร์และจอภาพ",
		"ทดสอบระบบก่อนวันงาน",
	}},
	{"คณะกรรมการฝ่ายปฐมพยาบาลและความปลอดภัย", "ภาคผนวก ฌ", []string{
		"จัดเตรียมชุดปฐมพยาบาล",
		"ประสานงานโรงพยาบาลใกล้เคียง",
		"กำหนดเส้นทางอพยพฉุกเฉิน",
	}},
	{"คณะกรรมการฝ่ายประเมินผล", "ภาคผนวก ญ", []string{
		"จัดทำแบบประเมินความพึงพอใจ",
		"รวบรวมและวิเคราะห์ผลการประเมิน",
		"จัดทำรายงานสรุปผลการดำเนินงาน",
	}},
}

// Committees は初期投入する委員会の一覧を返します。IDは1から順番に割り当てます。
func Committees() []models.Committee {
	out := make([]models.Committee, 0, len(committees))
	for i, sc := range committees {
		appendix := sc.appendix
		tasks := make([]models.Task, len(sc.tasks))
		for j, text := range sc.tasks {
			tasks[j] = models.Task{Text: text, SortOrder: j}
		}
		out = append(out, models.Committee{
			ID:       i + 1,
			Title:    sc.title,
			Appendix: &appendix,
			Status:   models.StatusNotStarted,
			Tasks:    tasks,
		})
	}
	return out
}
