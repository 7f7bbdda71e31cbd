package services

// Notices shown after DataStore mutations. The fallback text is used when the
// error carries no server message.
const (
	msgAddStudent        = "เพิ่มนักศึกษาสำเร็จ"
	msgAddStudentFail    = "ไม่สามารถเพิ่มนักศึกษาได้"
	msgUpdateStudent     = "แก้ไขข้อมูลนักศึกษาสำเร็จ"
	msgUpdateStudentFail = "ไม่สามารถแก้ไขข้อมูลนักศึกษาได้"
	msgDeleteStudent     = "ลบนักศึกษาสำเร็จ"
	msgDeleteStudentFail = "ไม่สามารถลบนักศึกษาได้"
	msgGraduate          = "สำเร็จการศึกษาเรียบร้อย"
	msgGraduateFail      = "ไม่สามารถดำเนินการได้"
	msgStatus            = "อัปเดตสถานะสำเร็จ"
	msgStatusFail        = "ไม่สามารถอัปเดตสถานะได้"
	msgAddAlumni         = "เพิ่มศิษย์เก่าสำเร็จ"
	msgAddAlumniFail     = "ไม่สามารถเพิ่มศิษย์เก่าได้"
	msgUpdateAlumni      = "แก้ไขข้อมูลศิษย์เก่าสำเร็จ"
	msgUpdateAlumniFail  = "ไม่สามารถแก้ไขข้อมูลศิษย์เก่าได้"
	msgDeleteAlumni      = "ลบศิษย์เก่าสำเร็จ"
	msgDeleteAlumniFail  = "ไม่สามารถลบศิษย์เก่าได้"
	msgAddProject        = "เพิ่มโครงงานสำเร็จ"
	msgAddProjectFail    = "ไม่สามารถเพิ่มโครงงานได้"
	msgUpdateProject     = "แก้ไขโครงงานสำเร็จ"
	msgUpdateProjectFail = "ไม่สามารถแก้ไขโครงงานได้"
	msgDeleteProject     = "ลบโครงงานสำเร็จ"
	msgDeleteProjectFail = "ไม่สามารถลบโครงงานได้"
	msgAddComment        = "เพิ่มความคิดเห็นสำเร็จ"
	msgAddCommentFail    = "ไม่สามารถเพิ่มความคิดเห็นได้"
	msgAddAdvisor        = "เพิ่มอาจารย์ที่ปรึกษาสำเร็จ"
	msgAddAdvisorFail    = "ไม่สามารถเพิ่มอาจารย์ที่ปรึกษาได้"
	msgUpdateAdvisor     = "แก้ไขข้อมูลอาจารย์ที่ปรึกษาสำเร็จ"
	msgUpdateAdvisorFail = "ไม่สามารถแก้ไขข้อมูลอาจารย์ที่ปรึกษาได้"
	msgDeleteAdvisor     = "ลบอาจารย์ที่ปรึกษาสำเร็จ"
	msgDeleteAdvisorFail = "ไม่สามารถลบอาจารย์ที่ปรึกษาได้"
	msgImportDone        = "นำเข้าข้อมูลสำเร็จ %d รายการ"
	msgImportSkipped     = "ข้ามข้อมูล %d รายการ (ซ้ำหรือมีข้อผิดพลาด)"
)
