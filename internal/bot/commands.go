// Package bot contains the message router: it turns each inbound text into
// exactly one action (a direct reply, a state transition plus a prompt, or a
// delegation into an intent handler) and drives the per-user conversation
// state machine.
package bot

import "github.com/wayneshih/threec-bot/internal/state"

// Global commands, matched before any conversation state is consulted.
const (
	CommandLeave         = "離開"
	CommandHelp          = "說明"
	CommandViewWishlist  = "查看我的車車"
	CommandRemovePrefix  = "移除"
	CommandClearWishlist = "清空購物車"
	CommandAddPrefix     = "添加到願望清單:"
	CommandDeclineAdd    = "不添加"
)

// Top-level intent-selection keywords.
const (
	KeywordSpecQuery  = "查詢裝置"
	KeywordPriceQuery = "我想查詢價格"
	KeywordCompare    = "大車拼"
	KeywordRecommend  = "求推薦"
	KeywordRanking    = "金榜題名"
	KeywordReview     = "評價大師"
)

// keywordIntents maps each selection keyword to the intent it starts. The
// recommend keyword enters the transient device-type state, not the final
// recommend state.
var keywordIntents = map[string]state.Intent{
	KeywordSpecQuery:  state.IntentSpecQuery,
	KeywordPriceQuery: state.IntentPriceQuery,
	KeywordCompare:    state.IntentCompare,
	KeywordRecommend:  state.IntentRecommendType,
	KeywordRanking:    state.IntentRanking,
	KeywordReview:     state.IntentReview,
}

// intentPrompts are the prompt-for-input replies sent when a keyword starts a
// flow.
var intentPrompts = map[state.Intent]string{
	state.IntentSpecQuery:     "請輸入您想查詢的裝置型號：",
	state.IntentPriceQuery:    "請輸入您想查詢價格的裝置型號：",
	state.IntentCompare:       "請輸入您想比較的兩種裝置型號，以逗號分隔：",
	state.IntentRecommendType: "請輸入您想推薦的裝置類型（例如：手機、筆電、耳機等）：",
	state.IntentRanking:       "請輸入您想查詢的產品類型（例如：手機）：",
	state.IntentReview:        "請輸入您想查詢評價的裝置型號：",
}

const (
	leaveReply      = "已退出當前功能。輸入「說明」查看可用指令。"
	unknownReply    = "我不明白您的指令。請輸入「說明」查看可用功能。"
	declineAddReply = "好的，已取消添加。"
	rateLimitReply  = "您的訊息太頻繁了，請稍後再試。"
	panicReply      = "系統發生錯誤，請再試一次。"
)

const helpMessage = `🤖 3C小助手功能說明：

1. 產品規格查詢: 輸入「查詢裝置」
2. 產品價格查詢: 輸入「我想查詢價格」
3. 產品比較: 輸入「大車拼」
4. 推薦產品: 輸入「求推薦」
5. 熱門排行: 輸入「金榜題名」
6. 產品評價: 輸入「評價大師」

🛒 願望清單功能：
- 查看: 輸入「查看我的車車」
- 移除: 輸入「移除+產品名稱」
- 清空: 輸入「清空購物車」

❓ 其他指令：
- 「說明」- 顯示此說明
- 「離開」- 終止目前程序`
