package domain

var (
	SCENARIO_LIST_SUCCESS          = "Berhasil mendapatkan daftar skenario"
	SCENARIO_LIST_FAILED           = "Gagal mendapatkan daftar skenario"
	SCENARIO_START_SESSION_SUCCESS = "Berhasil memulai session percakapan"
	SCENARIO_START_SESSION_FAILED  = "Gagal memulai session percakapan"
	SCENARIO_APPLY_CHOICE_SUCCESS  = "Berhasil memproses pilihan"
	SCENARIO_APPLY_CHOICE_FAILED   = "Gagal memproses pilihan"
	SCENARIO_FINALIZE_SUCCESS      = "Berhasil menyelesaikan session"
	SCENARIO_FINALIZE_FAILED       = "Gagal menyelesaikan session"
	SCENARIO_SAVE_RESULT_SUCCESS   = "Berhasil menyimpan hasil session"
	SCENARIO_SAVE_RESULT_FAILED    = "Gagal menyimpan hasil session"
	GRADING_GRADE_ANSWER_SUCCESS   = "Berhasil menilai jawaban"
	GRADING_GRADE_ANSWER_FAILED    = "Gagal menilai jawaban"
	GRADING_GRADE_SUMMARY_SUCCESS  = "Berhasil menilai ringkasan"
	GRADING_GRADE_SUMMARY_FAILED   = "Gagal menilai ringkasan"
	STATS_GET_SUCCESS              = "Berhasil mendapatkan statistik user"
	STATS_GET_FAILED               = "Gagal mendapatkan statistik user"
)
