package dict

var defaultCodes = []Entry{
	{"*340-0020", "右膝 前後位+側位"},
	{"*340-0010", "左膝 前後位+側位"},
	{"32017C", "下肢 X 光"},
	{"32018C", "下肢連續攝影"},
}

var defaultPhrases = []Entry{
	{"Rt Knee AP+Lat", "右膝 前後位+側位"},
	{"Lt Knee AP+Lat", "左膝 前後位+側位"},
	{"Lower Limbs - Rt AP", "右下肢 前後位"},
	{"Lower Limbs - Lt AP", "左下肢 前後位"},
	{"Lower extremities", "下肢"},
	{"Upper extremities", "上肢"},
}

var defaultTokens = []Token{
	// side
	{"Rt", "右", Side},
	{"R", "右", Side},
	{"Right", "右", Side},
	{"Lt", "左", Side},
	{"L", "左", Side},
	{"Left", "左", Side},
	{"Bil", "雙側", Side},
	{"Bilateral", "雙側", Side},

	// projection / position
	{"AP", "前後位", View},
	{"PA", "後前位", View},
	{"Lat", "側位", View},
	{"Oblique", "斜位", View},
	{"Axial", "軸位", View},
	{"Coronal", "冠狀位", View},
	{"Sagittal", "矢狀位", View},
	{"Supine", "仰臥位", View},
	{"Prone", "俯臥位", View},
	{"Flex", "屈曲", View},
	{"Extension", "伸展", View},

	// anatomy
	{"Knee", "膝", Anatomy},
	{"Femur", "股骨", Anatomy},
	{"Tibia", "脛骨", Anatomy},
	{"Fibula", "腓骨", Anatomy},
	{"Humerus", "肱骨", Anatomy},
	{"Radius", "橈骨", Anatomy},
	{"Ulna", "尺骨", Anatomy},
	{"Spine", "脊椎", Anatomy},
	{"Cervical", "頸椎", Anatomy},
	{"Lumbar", "腰椎", Anatomy},
	{"Chest", "胸部", Anatomy},
	{"Abdomen", "腹部", Anatomy},
	{"Pelvis", "骨盆", Anatomy},
	{"Skull", "顱骨", Anatomy},
}
