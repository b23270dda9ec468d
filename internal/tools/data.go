package tools

// 旅行知识静态数据表。内容是模型的「工具检索结果」，
// 未覆盖的城市由各工具给出兜底文案。

// 城市 -> 气候概述
var weatherData = map[string]string{
	"北京": "春秋干燥多风（10-22°C），夏季炎热多雨（25-35°C），冬季寒冷干燥（-8-5°C）。最佳旅行季节：4-5 月、9-10 月。",
	"上海": "亚热带季风气候，春秋温和（12-22°C），梅雨季 6-7 月，夏季闷热（28-36°C），冬季湿冷（0-8°C）。最佳旅行季节：3-5 月、9-11 月。",
	"成都": "盆地气候，全年多云雾、空气湿润，夏季闷热（25-33°C），冬季阴冷少雪（3-10°C）。春秋最舒适（15-25°C）。",
	"三亚": "热带海洋气候，全年温暖（20-32°C），10 月至次年 4 月是旱季也是旺季，5-9 月多台风雷雨。",
	"杭州": "四季分明，春季多雨、西湖烟雨最美（12-22°C），夏季炎热（28-38°C），秋季桂花香（15-25°C），冬季偶有雪景。",
	"西安": "温带季风气候，春秋短促舒适（10-22°C），夏季炎热（26-38°C），冬季干冷（-5-8°C）。4-5 月、9-10 月最宜出行。",
}

// Attraction 是单个景点条目
type Attraction struct {
	Name string // 景点名
	Type string // 类型：文化/自然/美食/购物/休闲
	Desc string
	Time string // 建议游玩时长
	Cost string // 门票参考
}

// 城市 -> 热门景点
var attractionsData = map[string][]Attraction{
	"北京": {
		{Name: "故宫博物院", Type: "文化", Desc: "明清两代皇宫，世界最大宫殿建筑群，需提前预约", Time: "半天-1天", Cost: "¥60"},
		{Name: "长城（八达岭）", Type: "文化", Desc: "不到长城非好汉，建议早出发避开人流", Time: "半天", Cost: "¥40"},
		{Name: "颐和园", Type: "文化", Desc: "皇家园林典范，昆明湖泛舟惬意", Time: "3-4小时", Cost: "¥30"},
		{Name: "南锣鼓巷", Type: "美食", Desc: "胡同文化与小吃聚集地，适合傍晚闲逛", Time: "2-3小时", Cost: "免费"},
	},
	"上海": {
		{Name: "外滩", Type: "休闲", Desc: "万国建筑博览群，夜景必看", Time: "2小时", Cost: "免费"},
		{Name: "豫园", Type: "文化", Desc: "江南古典园林，旁边城隍庙小吃众多", Time: "2-3小时", Cost: "¥40"},
		{Name: "武康路", Type: "休闲", Desc: "梧桐区 citywalk 经典路线，咖啡馆密集", Time: "半天", Cost: "免费"},
	},
	"成都": {
		{Name: "大熊猫繁育研究基地", Type: "自然", Desc: "看熊猫要趁早，上午 9 点前最活跃", Time: "半天", Cost: "¥55"},
		{Name: "宽窄巷子", Type: "美食", Desc: "清代古街区，茶馆、川菜、小吃一应俱全", Time: "2-3小时", Cost: "免费"},
		{Name: "都江堰", Type: "文化", Desc: "两千年前的水利工程，至今仍在使用", Time: "半天", Cost: "¥80"},
		{Name: "锦里", Type: "美食", Desc: "三国主题古街，夜景灯笼最有氛围", Time: "2小时", Cost: "免费"},
	},
	"三亚": {
		{Name: "亚龙湾", Type: "自然", Desc: "天下第一湾，沙质细腻适合游泳", Time: "1天", Cost: "免费"},
		{Name: "蜈支洲岛", Type: "自然", Desc: "潜水和水上项目最佳选择，需坐船上岛", Time: "1天", Cost: "¥144起"},
		{Name: "南山文化旅游区", Type: "文化", Desc: "108 米海上观音，佛教文化景区", Time: "半天", Cost: "¥108"},
	},
	"杭州": {
		{Name: "西湖", Type: "自然", Desc: "苏堤白堤骑行或漫步，断桥雷峰塔经典打卡", Time: "1天", Cost: "免费"},
		{Name: "灵隐寺", Type: "文化", Desc: "千年古刹，飞来峰石窟造像", Time: "半天", Cost: "¥75"},
		{Name: "西溪湿地", Type: "自然", Desc: "城市湿地公园，摇橹船体验", Time: "半天", Cost: "¥80"},
	},
	"西安": {
		{Name: "兵马俑", Type: "文化", Desc: "世界第八大奇迹，建议请讲解", Time: "半天", Cost: "¥120"},
		{Name: "西安城墙", Type: "文化", Desc: "保存最完整的古城墙，可骑行一圈", Time: "2-3小时", Cost: "¥54"},
		{Name: "回民街", Type: "美食", Desc: "肉夹馍、羊肉泡馍、biangbiang 面聚集地", Time: "2-3小时", Cost: "免费"},
		{Name: "大唐不夜城", Type: "休闲", Desc: "夜间灯光秀与仿唐街区，适合晚上逛", Time: "2小时", Cost: "免费"},
	},
}

// 城市 -> 每日行程模板（按天排序）
var itineraryData = map[string][]string{
	"北京": {
		"第 1 天：天安门广场 → 故宫博物院 → 景山公园看日落 → 王府井晚餐",
		"第 2 天：八达岭长城（早出发）→ 下午奥林匹克公园 → 鸟巢水立方夜景",
		"第 3 天：颐和园 → 圆明园 → 清华北大外围 → 五道口晚餐",
		"第 4 天：天坛 → 前门大栅栏 → 南锣鼓巷胡同游",
		"第 5 天：国家博物馆或 798 艺术区 → 采购特产返程",
	},
	"成都": {
		"第 1 天：大熊猫基地（上午）→ 宽窄巷子 → 人民公园喝茶采耳",
		"第 2 天：都江堰 + 青城山一日游",
		"第 3 天：武侯祠 → 锦里 → 九眼桥夜景",
		"第 4 天：东郊记忆 → 春熙路太古里 → 火锅告别餐",
	},
	"三亚": {
		"第 1 天：抵达后亚龙湾海滩放松 → 海鲜市场晚餐",
		"第 2 天：蜈支洲岛一日游（潜水/摩托艇）",
		"第 3 天：南山文化旅游区 → 天涯海角日落",
		"第 4 天：免税城购物 → 返程",
	},
	"杭州": {
		"第 1 天：西湖环湖（苏堤-断桥-雷峰塔）→ 河坊街晚餐",
		"第 2 天：灵隐寺 → 龙井村茶园 → 九溪烟树",
		"第 3 天：西溪湿地 → 京杭大运河夜游",
	},
	"西安": {
		"第 1 天：兵马俑 + 华清池一日游 → 晚上回民街",
		"第 2 天：陕西历史博物馆（需预约）→ 大雁塔 → 大唐不夜城",
		"第 3 天：西安城墙骑行 → 碑林博物馆 → 永兴坊摔碗酒",
	},
}

// BudgetLevel 是某一消费档次的各项费用
type BudgetLevel struct {
	Accommodation string // 住宿
	Food          string // 餐饮
	Transport     string // 市内交通
	Tickets       string // 门票/活动
	Total         string // 每日合计
}

// 城市 -> 消费档次 -> 各项费用
var budgetData = map[string]map[string]BudgetLevel{
	"北京": {
		"经济": {Accommodation: "¥150-300/晚", Food: "¥80-120/天", Transport: "¥30/天", Tickets: "¥50-100/天", Total: "¥310-550/天"},
		"中等": {Accommodation: "¥400-700/晚", Food: "¥150-250/天", Transport: "¥60/天", Tickets: "¥100-200/天", Total: "¥710-1210/天"},
		"豪华": {Accommodation: "¥1200+/晚", Food: "¥400+/天", Transport: "¥200/天", Tickets: "¥200+/天", Total: "¥2000+/天"},
	},
	"上海": {
		"经济": {Accommodation: "¥150-300/晚", Food: "¥80-130/天", Transport: "¥30/天", Tickets: "¥50-100/天", Total: "¥310-560/天"},
		"中等": {Accommodation: "¥400-800/晚", Food: "¥150-280/天", Transport: "¥60/天", Tickets: "¥100-200/天", Total: "¥710-1340/天"},
		"豪华": {Accommodation: "¥1500+/晚", Food: "¥500+/天", Transport: "¥200/天", Tickets: "¥300+/天", Total: "¥2500+/天"},
	},
	"成都": {
		"经济": {Accommodation: "¥100-200/晚", Food: "¥60-100/天", Transport: "¥20/天", Tickets: "¥50-80/天", Total: "¥230-400/天"},
		"中等": {Accommodation: "¥300-500/晚", Food: "¥150-250/天", Transport: "¥50/天", Tickets: "¥80-150/天", Total: "¥580-950/天"},
		"豪华": {Accommodation: "¥800+/晚", Food: "¥400+/天", Transport: "¥150/天", Tickets: "¥150+/天", Total: "¥1500+/天"},
	},
	"三亚": {
		"经济": {Accommodation: "¥200-400/晚", Food: "¥100-150/天", Transport: "¥50/天", Tickets: "¥100-200/天", Total: "¥450-800/天"},
		"中等": {Accommodation: "¥500-1000/晚", Food: "¥200-350/天", Transport: "¥100/天", Tickets: "¥200-300/天", Total: "¥1000-1750/天"},
		"豪华": {Accommodation: "¥2000+/晚", Food: "¥500+/天", Transport: "¥200/天", Tickets: "¥300+/天", Total: "¥3000+/天"},
	},
	"杭州": {
		"经济": {Accommodation: "¥150-280/晚", Food: "¥70-110/天", Transport: "¥25/天", Tickets: "¥50-80/天", Total: "¥295-495/天"},
		"中等": {Accommodation: "¥350-600/晚", Food: "¥150-250/天", Transport: "¥50/天", Tickets: "¥100-200/天", Total: "¥650-1100/天"},
		"豪华": {Accommodation: "¥1000+/晚", Food: "¥400+/天", Transport: "¥150/天", Tickets: "¥200+/天", Total: "¥1750+/天"},
	},
	"西安": {
		"经济": {Accommodation: "¥120-250/晚", Food: "¥60-100/天", Transport: "¥25/天", Tickets: "¥60-120/天", Total: "¥265-495/天"},
		"中等": {Accommodation: "¥300-500/晚", Food: "¥150-250/天", Transport: "¥60/天", Tickets: "¥120-200/天", Total: "¥630-1010/天"},
		"豪华": {Accommodation: "¥800+/晚", Food: "¥400+/天", Transport: "¥150/天", Tickets: "¥200+/天", Total: "¥1550+/天"},
	},
}
