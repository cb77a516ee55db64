package catalog

import "github.com/mizutanik/kokoro_backend/internal/mbti"

type questionRow struct {
	id        string
	axis      mbti.Axis
	ja        string
	en        string
	direction int
	order     int
}

// questionTable is the canonical 24-question set, six per axis.
var questionTable = []questionRow{
	{"ei_1", mbti.AxisEI, "人とのやりとりでエネルギーを得る", "I gain energy from interactions with people", -1, 1},
	{"ei_2", mbti.AxisEI, "一人の時間を大切にする", "I value alone time", 1, 2},
	{"ei_3", mbti.AxisEI, "新しい人に会うのが好き", "I enjoy meeting new people", -1, 3},
	{"ei_4", mbti.AxisEI, "静かな環境を好む", "I prefer quiet environments", 1, 4},
	{"ei_5", mbti.AxisEI, "パーティーなどの社交的な場が好き", "I enjoy social gatherings like parties", -1, 5},
	{"ei_6", mbti.AxisEI, "少数の親しい友人を持つ方が好き", "I prefer having a few close friends", 1, 6},

	{"sn_1", mbti.AxisSN, "具体的な事実を重視する", "I focus on concrete facts", -1, 7},
	{"sn_2", mbti.AxisSN, "可能性や未来について考えるのが好き", "I like thinking about possibilities and the future", 1, 8},
	{"sn_3", mbti.AxisSN, "詳細な手順を踏むのが好き", "I like following detailed procedures", -1, 9},
	{"sn_4", mbti.AxisSN, "直感で物事を判断することが多い", "I often make decisions based on intuition", 1, 10},
	{"sn_5", mbti.AxisSN, "実用的な解決策を好む", "I prefer practical solutions", -1, 11},
	{"sn_6", mbti.AxisSN, "理論的な概念に興味がある", "I am interested in theoretical concepts", 1, 12},

	{"tf_1", mbti.AxisTF, "論理的な分析を重視する", "I value logical analysis", -1, 13},
	{"tf_2", mbti.AxisTF, "人の感情を考慮して決定する", "I consider people's feelings when making decisions", 1, 14},
	{"tf_3", mbti.AxisTF, "客観的な事実に基づいて判断する", "I make judgments based on objective facts", -1, 15},
	{"tf_4", mbti.AxisTF, "他人の気持ちに共感しやすい", "I easily empathize with others' feelings", 1, 16},
	{"tf_5", mbti.AxisTF, "公平性を重視する", "I value fairness", -1, 17},
	{"tf_6", mbti.AxisTF, "調和を保つことが大切", "Maintaining harmony is important", 1, 18},

	{"jp_1", mbti.AxisJP, "きちんと計画を立てるのが好き", "I like to make detailed plans", -1, 19},
	{"jp_2", mbti.AxisJP, "柔軟性を保ちたい", "I want to keep things flexible", 1, 20},
	{"jp_3", mbti.AxisJP, "締切を守ることが重要", "Meeting deadlines is important", -1, 21},
	{"jp_4", mbti.AxisJP, "新しい選択肢が現れることを好む", "I like when new options emerge", 1, 22},
	{"jp_5", mbti.AxisJP, "決断を下すのが早い", "I make decisions quickly", -1, 23},
	{"jp_6", mbti.AxisJP, "情報を集めてから決める", "I gather information before deciding", 1, 24},
}
