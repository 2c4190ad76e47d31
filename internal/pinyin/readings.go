package pinyin

// readings maps every built-in fileKey to the character teachers use to
// voice it: initials with their customary vowel (b as 玻 bō, zh as 知 zhī),
// finals and whole syllables with a zero-initial or matching syllable.
// A Mandarin voice reads Latin pinyin letter by letter, so audio is
// synthesised from these instead of the display.
var readings = map[string]string{
	// initials
	"b": "玻", "p": "坡", "m": "摸", "f": "佛", "d": "得", "t": "特", "n": "讷",
	"l": "勒", "g": "哥", "k": "科", "h": "喝", "j": "基", "q": "欺", "x": "希",
	"zh": "知", "ch": "蚩", "sh": "诗", "r": "日", "z": "资", "c": "雌", "s": "思",

	// finals
	"a": "啊", "o": "喔", "e": "鹅", "i": "衣", "u": "乌", "v": "迂",
	"ai": "爱", "ei": "欸", "ui": "威", "ao": "熬", "ou": "欧", "iu": "优",
	"ie": "耶", "ve": "约", "er": "儿", "an": "安", "en": "恩", "in": "因",
	"un": "温", "vn": "晕", "ang": "昂", "eng": "鞥", "ing": "英", "ong": "嗡",

	// whole-syllable readings
	"yi": "衣", "wu": "乌", "yu": "鱼", "ye": "耶", "yue": "月", "yin": "音",
	"yun": "云", "yuan": "元", "ying": "鹰", "zi": "字", "ci": "词", "si": "丝",
	"zhi": "织", "chi": "吃", "shi": "狮", "ri": "日",
}
